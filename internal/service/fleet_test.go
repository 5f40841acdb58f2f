package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/state"
)

func newFleetEnv(t *testing.T) (*env, *FleetService) {
	e := newEnv(t)
	e.loginAs(models.User{ID: "1", Email: "pic@example.com", Role: "pic"})
	return e, NewFleetService(e.api, e.uploader, zap.NewNop())
}

func TestPendingRequestsFiltersStatus(t *testing.T) {
	e, svc := newFleetEnv(t)
	e.mock.SeedRequest(models.CarRequest{ID: 11, CarName: "Swift", Status: models.RequestStatusParkingAssigned})
	e.mock.SeedRequest(models.CarRequest{ID: 12, CarName: "Nexon", Status: models.RequestStatusPending})
	e.mock.SeedRequest(models.CarRequest{ID: 13, CarName: "i20", Status: models.RequestStatusApproved})

	requests, err := svc.PendingRequests(context.Background())
	require.NoError(t, err)

	require.Len(t, requests, 1)
	assert.Equal(t, int64(11), requests[0].ID)
	assert.Equal(t, "Swift", requests[0].CarName)
}

func TestOnboardCar(t *testing.T) {
	e, svc := newFleetEnv(t)
	request := models.CarRequest{ID: 11, CarName: "Swift", VendorID: 2, ParkingID: 1, Status: models.RequestStatusParkingAssigned}
	e.mock.SeedRequest(request)

	car, err := svc.OnboardCar(context.Background(), request, OnboardCarInput{
		RequestID: 11,
		Name:      "Maruti Swift",
		Number:    "MH12AB1234",
		VendorID:  2,
		ParkingID: 1,
		RCNumber:  "RC-99",
		RCImgRef:  "rc.jpg",
		// 已是 URL 的引用不重复上传
		InsuranceImgRef: "https://cdn.example.com/existing/ins.pdf",
		ImageRefs:       []string{"front.jpg"},
	})
	require.NoError(t, err)

	assert.NotZero(t, car.ID)
	assert.Equal(t, "https://cdn.example.com/rc.jpg", car.RCImg)
	assert.Equal(t, "https://cdn.example.com/existing/ins.pdf", car.InsuranceImg)
	assert.Equal(t, []string{"https://cdn.example.com/front.jpg"}, car.Images)
	// 新车固定 unavailable 创建
	assert.Equal(t, models.CarStatusUnavailable, car.Status)

	// 入驻完成后原请求被通过
	updated, ok := e.mock.Request(11)
	require.True(t, ok)
	assert.Equal(t, models.RequestStatusApproved, updated.Status)

	// 只上传本地路径
	assert.ElementsMatch(t, []string{"rc.jpg", "front.jpg"}, e.uploader.uploaded())
}

func TestOnboardCarMissingFields(t *testing.T) {
	e, svc := newFleetEnv(t)
	request := models.CarRequest{ID: 11, Status: models.RequestStatusParkingAssigned}

	_, err := svc.OnboardCar(context.Background(), request, OnboardCarInput{
		RequestID: 11,
		Name:      "Swift",
		// 缺 Number / RCNumber / RCImgRef
	})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, e.uploader.uploaded())
}

func TestOnboardCarNotActionable(t *testing.T) {
	_, svc := newFleetEnv(t)
	request := models.CarRequest{ID: 11, Status: models.RequestStatusApproved}

	_, err := svc.OnboardCar(context.Background(), request, OnboardCarInput{
		RequestID: 11,
		Name:      "Swift",
		Number:    "MH12AB1234",
		RCNumber:  "RC-99",
		RCImgRef:  "rc.jpg",
	})
	assert.ErrorIs(t, err, ErrNotActionable)
}

func TestApprove(t *testing.T) {
	e, svc := newFleetEnv(t)
	request := models.CarRequest{ID: 11, Status: models.RequestStatusParkingAssigned}
	e.mock.SeedRequest(request)
	e.mock.SeedCar(models.Car{ID: 21, Name: "Swift", Number: "MH12AB1234"})

	require.NoError(t, svc.Approve(context.Background(), request, 21))

	updated, _ := e.mock.Request(11)
	assert.Equal(t, models.RequestStatusApproved, updated.Status)

	// 已通过的请求不可再处理
	assert.ErrorIs(t, svc.Approve(context.Background(), updated, 21), ErrNotActionable)
}

func TestDeny(t *testing.T) {
	e, svc := newFleetEnv(t)
	request := models.CarRequest{ID: 11, Status: models.RequestStatusParkingAssigned}
	e.mock.SeedRequest(request)

	// 原因必填
	assert.ErrorIs(t, svc.Deny(context.Background(), request, ""), ErrReasonRequired)
	pending, _ := e.mock.Request(11)
	assert.Equal(t, models.RequestStatusParkingAssigned, pending.Status)

	require.NoError(t, svc.Deny(context.Background(), request, "documents missing"))
	denied, _ := e.mock.Request(11)
	assert.Equal(t, models.RequestStatusDenied, denied.Status)
}

func TestApprovalGuardFollowsWorkflow(t *testing.T) {
	e, svc := newFleetEnv(t)

	// 审批入口的放行与否必须与状态机的转移表一致：
	// 只有 PARKING_ASSIGNED 能触发 approve / deny
	statuses := []string{
		models.RequestStatusPending,
		models.RequestStatusParkingAssigned,
		models.RequestStatusApproved,
		models.RequestStatusDenied,
	}

	for i, status := range statuses {
		id := int64(100 + i)
		e.mock.SeedRequest(models.CarRequest{ID: id, Status: status})
		request, ok := e.mock.Request(id)
		require.True(t, ok)

		err := svc.Approve(context.Background(), request, 21)
		if state.NewMachine(id, status, nil).Can(state.EventApprove) {
			assert.NoError(t, err, "status=%s", status)
		} else {
			assert.ErrorIs(t, err, ErrNotActionable, "status=%s", status)
		}
	}

	for i, status := range statuses {
		id := int64(200 + i)
		e.mock.SeedRequest(models.CarRequest{ID: id, Status: status})
		request, ok := e.mock.Request(id)
		require.True(t, ok)

		err := svc.Deny(context.Background(), request, "documents missing")
		if state.NewMachine(id, status, nil).Can(state.EventDeny) {
			assert.NoError(t, err, "status=%s", status)
		} else {
			assert.ErrorIs(t, err, ErrNotActionable, "status=%s", status)
		}
	}
}

func TestCarsByParking(t *testing.T) {
	e, svc := newFleetEnv(t)
	e.mock.SeedCar(models.Car{ID: 21, Name: "Swift", ParkingID: 1})
	e.mock.SeedCar(models.Car{ID: 22, Name: "Nexon", ParkingID: 2})

	cars, err := svc.Cars(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, int64(21), cars[0].ID)
}

func TestCarDetails(t *testing.T) {
	e, svc := newFleetEnv(t)
	e.mock.SeedParkingLot(models.ParkingLot{ID: 1, Name: "Demo Parking"})
	e.mock.SeedCar(models.Car{ID: 21, Name: "Swift", ParkingID: 1})

	detail, err := svc.CarDetails(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, int64(21), detail.Car.ID)
	require.Len(t, detail.Parking, 1)
	assert.Equal(t, "Demo Parking", detail.Parking[0].Name)
}

func TestUpdateCarUploadsImages(t *testing.T) {
	e, svc := newFleetEnv(t)
	e.mock.SeedCar(models.Car{ID: 21, Name: "Swift", ParkingID: 1, Status: models.CarStatusUnavailable})

	images := []string{"new-front.jpg", "https://cdn.example.com/existing/side.jpg"}
	status := models.CarStatusAvailable
	car, err := svc.UpdateCar(context.Background(), 21, models.CarPatch{
		Status: &status,
		Images: &images,
	})
	require.NoError(t, err)

	assert.Equal(t, models.CarStatusAvailable, car.Status)
	assert.Equal(t, []string{
		"https://cdn.example.com/new-front.jpg",
		"https://cdn.example.com/existing/side.jpg",
	}, car.Images)
	assert.Equal(t, []string{"new-front.jpg"}, e.uploader.uploaded())
}
