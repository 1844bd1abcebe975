package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     NguoiDung `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"-"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Location    string    `gorm:"size:1024" json:"location"`
	Type        string    `gorm:"size:255" json:"type"`
	IsPrivate   bool      `gorm:"default:false" json:"is_private"`
	Picture     string    `gorm:"size:1024" json:"picture"`
	ShareURL    string    `gorm:"size:255" json:"share_url"`

	// Bộ đếm luôn khớp với số dòng event_reactions tương ứng,
	// chỉ được cập nhật bằng increment/decrement trong transaction.
	Likes    int `gorm:"default:0" json:"likes"`
	Dislikes int `gorm:"default:0" json:"dislikes"`

	Attenders []*NguoiDung `gorm:"many2many:event_attenders" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
