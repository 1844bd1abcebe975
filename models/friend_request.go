package models

import "time"

// FriendRequest chỉ tồn tại khi đang chờ xử lý:
// accept/reject/cancel đều xóa dòng, không cập nhật trạng thái.
type FriendRequest struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     NguoiDung `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   NguoiDung `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Seen       bool      `gorm:"default:false" json:"seen"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
