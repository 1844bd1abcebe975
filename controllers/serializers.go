package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/models"
)

// Các helper dựng JSON trả về, dùng chung giữa các controller.

func personJSON(u *models.NguoiDung) gin.H {
	return gin.H{
		"id":      u.ID,
		"ho":      u.Ho,
		"ten":     u.Ten,
		"picture": u.Picture,
		"sex":     u.Sex,
	}
}

func friendJSON(u *models.NguoiDung) gin.H {
	return gin.H{
		"id":           u.ID,
		"ho":           u.Ho,
		"ten":          u.Ten,
		"picture":      u.Picture,
		"sex":          u.Sex,
		"location":     u.Location,
		"phone_number": u.PhoneNumber,
		"birthday":     u.Birthday,
	}
}

func personWithFriendsJSON(u *models.NguoiDung) gin.H {
	friends := make([]gin.H, 0, len(u.Friends))
	for _, f := range u.Friends {
		friends = append(friends, friendJSON(f))
	}
	out := personJSON(u)
	out["friends"] = friends
	return out
}

func profileJSON(u *models.NguoiDung) gin.H {
	out := friendJSON(u)
	out["email"] = u.Email
	out["device_token"] = u.DeviceToken
	out["is_ios"] = u.IsIOS
	out["ngay_tao"] = u.NgayTao
	return out
}

func eventJSON(ev *models.Event) gin.H {
	return gin.H{
		"id":          ev.ID,
		"title":       ev.Title,
		"description": ev.Description,
		"creator":     personJSON(&ev.Creator),
		"start_time":  ev.StartTime,
		"lat":         ev.Lat,
		"lon":         ev.Lon,
		"location":    ev.Location,
		"type":        ev.Type,
		"is_private":  ev.IsPrivate,
		"picture":     ev.Picture,
		"share_url":   ev.ShareURL,
		"likes":       ev.Likes,
		"dislikes":    ev.Dislikes,
	}
}

func invitationJSON(inv *models.Invitation) gin.H {
	return gin.H{
		"id":         inv.ID,
		"sender":     personJSON(&inv.Sender),
		"event":      eventJSON(&inv.Event),
		"seen":       inv.Seen,
		"created_at": inv.CreatedAt,
	}
}

func messageJSON(m *models.ChatMessage) gin.H {
	return gin.H{
		"id":          m.ID,
		"sender_id":   m.SenderID,
		"receiver_id": m.ReceiverID,
		"text":        m.Text,
		"seen":        m.Seen,
		"created_at":  m.CreatedAt,
	}
}

func commentJSON(cm *models.Comment) gin.H {
	return gin.H{
		"id":         cm.ID,
		"event_id":   cm.EventID,
		"author":     personJSON(&cm.Author),
		"text":       cm.Text,
		"created_at": cm.CreatedAt,
	}
}

// friendIDsOf trả về danh sách id bạn bè của một user (đọc thẳng bảng ban_be)
func friendIDsOf(userID uint) ([]uint, error) {
	var ids []uint
	err := config.DB.Table("ban_be").Where("nguoi_dung_id = ?", userID).Pluck("friend_id", &ids).Error
	return ids, err
}
