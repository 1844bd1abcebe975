package models

import "time"

// Invitation mời một người dùng tham gia event; bị xóa khi accept/reject.
type Invitation struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     NguoiDung `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   NguoiDung `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	EventID    uint      `gorm:"not null;index" json:"event_id"`
	Event      Event     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	Seen       bool      `gorm:"default:false" json:"seen"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}
