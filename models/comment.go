package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	Event     Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    NguoiDung `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string    `gorm:"size:1024;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
