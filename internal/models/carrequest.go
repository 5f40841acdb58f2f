package models

// 车辆分配请求状态常量
const (
	RequestStatusPending         = "PENDING"
	RequestStatusParkingAssigned = "PARKING_ASSIGNED"
	RequestStatusApproved        = "APPROVED"
	RequestStatusDenied          = "DENIED"
)

// CarRequest 车辆分配请求：vendor 提交的车辆希望入驻某停车场，由 PIC 审批
type CarRequest struct {
	ID            int64  `json:"id"`
	CarName       string `json:"carName"`
	CarImage      string `json:"carImage"`
	CarCategory   string `json:"carCategory"`
	CarNumber     string `json:"carNumber"`
	VendorName    string `json:"vendorName"`
	VendorContact string `json:"vendorContact"`
	VendorID      int64  `json:"vendorId"`
	RequestDate   string `json:"requestDate"` // ISO 时间串
	Status        string `json:"status"`
	ParkingID     int64  `json:"parkingId,omitempty"`
	ParkingName   string `json:"parkingName,omitempty"`
	CatalogID     int64  `json:"catalogId,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}
