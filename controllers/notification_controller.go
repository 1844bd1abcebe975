package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/middleware"
	"github.com/vnkhanh/social-server/models"
)

// NotificationsCount trả về ba bộ đếm chưa xem, thuần đọc
func NotificationsCount(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var messages, invitations, friendRequests int64
	if err := config.DB.Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND seen = ?", u.ID, false).
		Count(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không đếm được thông báo"})
		return
	}
	if err := config.DB.Model(&models.Invitation{}).
		Where("receiver_id = ? AND seen = ?", u.ID, false).
		Count(&invitations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không đếm được thông báo"})
		return
	}
	if err := config.DB.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND seen = ?", u.ID, false).
		Count(&friendRequests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không đếm được thông báo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":        messages,
		"invitations":     invitations,
		"friend_requests": friendRequests,
	})
}

// Notifications gộp ba nguồn thành một feed, thuần đọc:
// người gửi tin nhắn chưa xem, lời mời event đang chờ, người gửi lời mời kết bạn chưa xem.
// Đánh dấu đã xem là thao tác riêng (các route /seen), feed không tự chuyển trạng thái.
func Notifications(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var chatters []models.NguoiDung
	if err := config.DB.Preload("Friends").
		Where("id IN (?)", config.DB.Model(&models.ChatMessage{}).
			Select("sender_id").
			Where("receiver_id = ? AND seen = ?", u.ID, false)).
		Find(&chatters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thông báo"})
		return
	}

	var invitations []models.Invitation
	if err := config.DB.Where("receiver_id = ?", u.ID).
		Preload("Sender").
		Preload("Event").
		Preload("Event.Creator").
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thông báo"})
		return
	}

	var requesters []models.NguoiDung
	if err := config.DB.Preload("Friends").
		Where("id IN (?)", config.DB.Model(&models.FriendRequest{}).
			Select("sender_id").
			Where("receiver_id = ? AND seen = ?", u.ID, false)).
		Find(&requesters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được thông báo"})
		return
	}

	messagesOut := make([]gin.H, 0, len(chatters))
	for i := range chatters {
		messagesOut = append(messagesOut, personWithFriendsJSON(&chatters[i]))
	}
	invitationsOut := make([]gin.H, 0, len(invitations))
	for i := range invitations {
		invitationsOut = append(invitationsOut, invitationJSON(&invitations[i]))
	}
	requestersOut := make([]gin.H, 0, len(requesters))
	for i := range requesters {
		requestersOut = append(requestersOut, personWithFriendsJSON(&requesters[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":        messagesOut,
		"invitations":     invitationsOut,
		"friend_requests": requestersOut,
	})
}
