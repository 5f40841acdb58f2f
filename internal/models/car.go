package models

// 车辆状态常量
const (
	CarStatusAvailable    = "available"
	CarStatusMaintenance  = "maintenance"
	CarStatusUnavailable  = "unavailable"
	CarStatusOutOfService = "out-of-service"
)

// Car 车辆信息
type Car struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Number        string   `json:"number"` // 车牌号
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountprice"`
	Color         string   `json:"color"`
	RCNumber      string   `json:"rcnumber"`
	RCImg         string   `json:"rcimg"`
	PollutionImg  string   `json:"pollutionimg"`
	InsuranceImg  string   `json:"insuranceimg"`
	Images        []string `json:"images"`
	VendorID      int64    `json:"vendorid"`
	ParkingID     int64    `json:"parkingid"`
	Status        string   `json:"status"`
	Category      string   `json:"category,omitempty"`

	// 费用
	InsuranceAmount  string  `json:"insuranceamount,omitempty"`
	FinePerHour      float64 `json:"fineperhour,omitempty"`
	ExtensionPerHour float64 `json:"extensionperhour,omitempty"`

	// 规格参数
	Maker          string  `json:"maker,omitempty"`
	Year           int     `json:"year,omitempty"`
	EngineCapacity *string `json:"engineCapacity,omitempty"`
	Mileage        string  `json:"mileage,omitempty"`
	Features       *string `json:"features,omitempty"`
	Transmission   string  `json:"transmission,omitempty"`
	Fuel           string  `json:"fuel,omitempty"`
	Seats          int     `json:"seats,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CarPatch 车辆部分更新：nil 字段表示不修改
type CarPatch struct {
	Number *string   `json:"number,omitempty"`
	Color  *string   `json:"color,omitempty"`
	Status *string   `json:"status,omitempty"`
	Images *[]string `json:"images,omitempty"`
}

// Review 车辆评价
type Review struct {
	ID      int64   `json:"id"`
	CarID   int64   `json:"carid"`
	UserID  string  `json:"userid"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
}

// CarDetail 车辆详情聚合（车辆 + 所在停车场 + 评价）
type CarDetail struct {
	Car              Car          `json:"car"`
	Reviews          []Review     `json:"reviews"`
	Parking          []ParkingLot `json:"parking"`
	AvgRating        float64      `json:"avgRating"`
	ReviewsWithUsers []Review     `json:"reviewsWithUsers,omitempty"`
}
