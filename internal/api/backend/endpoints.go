package backend

import (
	"strconv"
	"strings"
)

// 逻辑操作名 -> 路径模板。模板为常量数据，运行期不修改；
// :id 占位符在发送前做字面替换
const (
	EndpointLogin    = "/auth/v2/login"
	EndpointRegister = "/auth/v2/register"
	EndpointMe       = "/auth/me"

	EndpointUserProfile = "/user/profile"
	EndpointUserUpdate  = "/user/updateuser/:id"
	EndpointUserGet     = "/user/getuser/:id"

	EndpointRequestsAssigned = "/car-request/parking/getrequests"
	EndpointRequestApprove   = "/car-request/:id/approve"
	EndpointRequestDeny      = "/car-request/:id/deny"

	EndpointCarAdd        = "/cars/add"
	EndpointCarsByParking = "/cars/carbyparking/:id"
	EndpointCarDetails    = "/cars/getcar/:id"
	EndpointCarUpdate     = "/cars/:id"

	EndpointParkingSubmitApproval = "/parking/submit-approval"

	EndpointPICDashboard  = "/booking/pic/dashboard"
	EndpointConfirmPickup = "/booking/confirm-pickup"
)

// withID 将模板中的 :id 替换为数字 id
func withID(template string, id int64) string {
	return strings.ReplaceAll(template, ":id", strconv.FormatInt(id, 10))
}

// withIDString 将模板中的 :id 替换为字符串 id
func withIDString(template, id string) string {
	return strings.ReplaceAll(template, ":id", id)
}
