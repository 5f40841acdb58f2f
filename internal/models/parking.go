package models

// Coordinates 经纬度坐标（地理编码结果）
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParkingLot 停车场信息
type ParkingLot struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Locality string  `json:"locality"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Country  string  `json:"country,omitempty"`
	Pincode  int     `json:"pincode,omitempty"`
	Capacity int     `json:"capacity"`
	MainImg  string  `json:"mainimg"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// ParkingApprovalRequest 停车场入驻审批申请（一次性提交，生命周期由后端管理）
type ParkingApprovalRequest struct {
	ParkingName string   `json:"parkingName"`
	Locality    string   `json:"locality"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	Pincode     int      `json:"pincode"`
	Capacity    int      `json:"capacity"`
	MainImg     string   `json:"mainimg"`
	Images      []string `json:"images"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
}
