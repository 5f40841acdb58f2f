package models

// User 用户信息（登录身份 + 档案聚合）
// 注意：json tag 保持与后端 payload 一致（isverified / aadharimg 等小写拼写是后端既有格式）
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Number     string `json:"number"` // 手机号
	Role       string `json:"role,omitempty"`
	IsVerified bool   `json:"isverified,omitempty"`

	// 档案
	Age    int    `json:"age,omitempty"`
	Avatar string `json:"avatar,omitempty"`

	// 地址
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Locality string `json:"locality,omitempty"`
	Pincode  int    `json:"pincode,omitempty"`

	// 证件
	AadharNumber   string `json:"aadharNumber,omitempty"`
	AadharImg      string `json:"aadharimg,omitempty"`
	DLNumber       string `json:"dlNumber,omitempty"`
	DLImg          string `json:"dlimg,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	PassportImg    string `json:"passportimg,omitempty"`

	// 场地方（vendor）专属：绑定的停车场
	ParkingID *string `json:"parkingid,omitempty"`
}

// UserPatch 用户部分更新：nil 字段表示不修改
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Number      *string `json:"number,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
	Locality    *string `json:"locality,omitempty"`
	Pincode     *int    `json:"pincode,omitempty"`
	AadharImg   *string `json:"aadharimg,omitempty"`
	DLImg       *string `json:"dlimg,omitempty"`
	PassportImg *string `json:"passportimg,omitempty"`
}

// Apply 浅合并：只覆盖 patch 中设置了的字段
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Number != nil {
		u.Number = *p.Number
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.State != nil {
		u.State = *p.State
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.Locality != nil {
		u.Locality = *p.Locality
	}
	if p.Pincode != nil {
		u.Pincode = *p.Pincode
	}
	if p.AadharImg != nil {
		u.AadharImg = *p.AadharImg
	}
	if p.DLImg != nil {
		u.DLImg = *p.DLImg
	}
	if p.PassportImg != nil {
		u.PassportImg = *p.PassportImg
	}
}

// StringPtr 构造 *string（patch 字段快捷方式）
func StringPtr(s string) *string { return &s }

// IntPtr 构造 *int
func IntPtr(i int) *int { return &i }
