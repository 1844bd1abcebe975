package models

import "time"

type NguoiDung struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Ho      string    `gorm:"size:100" json:"ho"`
	Ten     string    `gorm:"size:100;not null" json:"ten"`
	Email   string    `gorm:"size:100;unique;not null" json:"email"`
	MatKhau string    `gorm:"size:255;not null" json:"-"` // ẩn khi trả JSON
	NgayTao time.Time `gorm:"autoCreateTime" json:"ngay_tao"`
	VaiTro  bool      `gorm:"not null;default:false" json:"vai_tro"`

	// Thông tin hồ sơ
	Location    string     `gorm:"size:1024" json:"location"`
	PhoneNumber string     `gorm:"size:1024" json:"phone_number"`
	Sex         string     `gorm:"size:2" json:"sex"` // f | m
	Birthday    *time.Time `json:"birthday"`
	Picture     string     `gorm:"size:1024" json:"picture"`
	DeviceToken string     `gorm:"size:1024" json:"device_token"`
	IsIOS       bool       `gorm:"default:false" json:"is_ios"`

	// Bạn bè: quan hệ hai chiều, mỗi chiều một dòng trong bảng ban_be.
	// Giao thức kết bạn (accept/remove) giữ hai chiều đồng bộ trong transaction.
	Friends []*NguoiDung `gorm:"many2many:ban_be" json:"-"`
}
