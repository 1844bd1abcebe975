package models

import "time"

type ChatMessage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     NguoiDung `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   NguoiDung `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string    `gorm:"size:1024;not null" json:"text"`
	Seen       bool      `gorm:"default:false" json:"seen"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
