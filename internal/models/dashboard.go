package models

// DashboardStats 停车场车队统计
type DashboardStats struct {
	TotalCars            int `json:"totalCars"`
	AvailableCars        int `json:"availableCars"`
	BookedCars           int `json:"bookedCars"`
	MaintenanceCars      int `json:"maintenanceCars"`
	PendingVerifications int `json:"pendingVerifications"`
}

// Booking 预订记录（dashboard 中展示的取车/在租条目）
type Booking struct {
	ID         int64  `json:"id"`
	CarID      int64  `json:"carId"`
	CarName    string `json:"carName"`
	RenterName string `json:"renterName,omitempty"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	Status     string `json:"status"`
}

// Dashboard PIC 仪表盘聚合数据
type Dashboard struct {
	ParkingLot              ParkingLot     `json:"parkingLot"`
	Stats                   DashboardStats `json:"stats"`
	PendingOTPVerifications []Booking      `json:"pendingOTPVerifications"`
	Bookings                []Booking      `json:"bookings"`
	Cars                    []Car          `json:"cars"`
}
