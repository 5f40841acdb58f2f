package backend

import "github.com/langchou/parkpic/internal/models"

// LoginRequest 登录请求
type LoginRequest struct {
	Identifier string `json:"identifier"` // 手机号或邮箱
	Password   string `json:"password"`
	AuthMethod string `json:"authMethod"` // 固定为 "password"
}

// RegisterRequest 注册请求（证件图片字段为已上传的 Cloudinary URL）
type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Number         string `json:"number"`
	Password       string `json:"password"`
	Age            int    `json:"age"`
	Avatar         string `json:"avatar"`
	Role           string `json:"role"` // user 或 vendor
	IsVerified     bool   `json:"isverified"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Locality       string `json:"locality"`
	Pincode        int    `json:"pincode"`
	AadharNumber   string `json:"aadharNumber"`
	AadharImg      string `json:"aadharimg"`
	DLNumber       string `json:"dlNumber"`
	DLImg          string `json:"dlimg"`
	PassportNumber string `json:"passportNumber,omitempty"`
	PassportImg    string `json:"passportimg,omitempty"`
}

// TokenPair 登录/注册返回的令牌对
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthData 登录/注册响应 data 部分
type AuthData struct {
	User      models.User `json:"user"`
	Tokens    TokenPair   `json:"tokens"`
	IsNewUser bool        `json:"isNewUser"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    AuthData `json:"data"`
}

// AddCarPayload 新增车辆请求
type AddCarPayload struct {
	Name         string   `json:"name"`
	Number       string   `json:"number"`
	VendorID     int64    `json:"vendorid"`
	ParkingID    int64    `json:"parkingid"`
	Color        string   `json:"color"`
	RCNumber     string   `json:"rcnumber"`
	RCImg        string   `json:"rcimg"`
	PollutionImg string   `json:"pollutionimg"`
	InsuranceImg string   `json:"insuranceimg"`
	Images       []string `json:"images"`
	CatalogID    int64    `json:"catalogId"`
	Status       string   `json:"status"`
}

// approvePayload 审批通过请求体
type approvePayload struct {
	CarID int64 `json:"carid"`
}

// denyPayload 审批拒绝请求体
type denyPayload struct {
	DenialReason string `json:"denialreason"`
}

// confirmPickupPayload OTP 取车确认请求体
type confirmPickupPayload struct {
	BookingID int64  `json:"bookingId"`
	OTPCode   string `json:"otpCode"`
}

// StatusResponse 无业务数据的操作响应
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
