package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/middleware"
	"github.com/vnkhanh/social-server/models"
)

// ListFriends trả về toàn bộ bạn bè của user
func ListFriends(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var friends []*models.NguoiDung
	if err := config.DB.Model(&u).Association("Friends").Find(&friends); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách bạn bè"})
		return
	}

	out := make([]gin.H, 0, len(friends))
	for _, f := range friends {
		out = append(out, friendJSON(f))
	}
	c.JSON(http.StatusOK, out)
}

// SearchFriends tìm trong bạn bè theo họ/tên
func SearchFriends(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	name := strings.ToLower(c.Query("name"))
	pattern := "%" + name + "%"

	var friends []models.NguoiDung
	if err := config.DB.Model(&models.NguoiDung{}).
		Joins("JOIN ban_be ON ban_be.friend_id = nguoi_dungs.id").
		Where("ban_be.nguoi_dung_id = ?", u.ID).
		Where("LOWER(nguoi_dungs.ho) LIKE ? OR LOWER(nguoi_dungs.ten) LIKE ?", pattern, pattern).
		Find(&friends).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tìm kiếm được"})
		return
	}

	out := make([]gin.H, 0, len(friends))
	for i := range friends {
		out = append(out, friendJSON(&friends[i]))
	}
	c.JSON(http.StatusOK, out)
}

// ListFriendRequests liệt kê lời mời kết bạn gửi tới user (chỉ đọc, không đánh dấu seen)
func ListFriendRequests(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var requests []models.FriendRequest
	if err := config.DB.Where("receiver_id = ?", u.ID).
		Preload("Sender").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được lời mời kết bạn"})
		return
	}

	out := make([]gin.H, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		out = append(out, gin.H{
			"id":         r.ID,
			"sender":     personJSON(&r.Sender),
			"seen":       r.Seen,
			"created_at": r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// MarkFriendRequestsSeen đánh dấu đã xem toàn bộ lời mời kết bạn gửi tới user
func MarkFriendRequestsSeen(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	if err := config.DB.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND seen = ?", u.ID, false).
		Update("seen", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được trạng thái"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã đánh dấu đã xem"})
}

// SendFriendRequest gửi lời mời kết bạn (get-or-create theo cặp sender→receiver)
func SendFriendRequest(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req struct {
		ReceiverID uint `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	if req.ReceiverID == u.ID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không thể tự kết bạn với chính mình"})
		return
	}

	var receiver models.NguoiDung
	if err := config.DB.First(&receiver, req.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
		return
	}

	// Gọi lặp lại không tạo bản ghi trùng; lời mời ngược chiều vẫn là bản ghi riêng
	fr := models.FriendRequest{SenderID: u.ID, ReceiverID: receiver.ID}
	if err := config.DB.
		Where("sender_id = ? AND receiver_id = ?", u.ID, receiver.ID).
		FirstOrCreate(&fr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không gửi được lời mời"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          fr.ID,
		"sender_id":   fr.SenderID,
		"receiver_id": fr.ReceiverID,
		"created_at":  fr.CreatedAt,
	})
}

// RespondFriendRequest xử lý accept/reject/cancel chung một chỗ:
// accept=true thêm cạnh bạn bè hai chiều rồi xóa lời mời, ngược lại chỉ xóa.
func RespondFriendRequest(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	var fr models.FriendRequest
	if err := config.DB.First(&fr, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy lời mời"})
		return
	}

	if fr.SenderID != u.ID && fr.ReceiverID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn không có quyền xử lý lời mời này"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if req.Accept {
			var sender, receiver models.NguoiDung
			if err := tx.First(&sender, fr.SenderID).Error; err != nil {
				return err
			}
			if err := tx.First(&receiver, fr.ReceiverID).Error; err != nil {
				return err
			}
			// Hai chiều phải cùng commit hoặc cùng rollback
			if err := tx.Model(&sender).Association("Friends").Append(&receiver); err != nil {
				return err
			}
			if err := tx.Model(&receiver).Association("Friends").Append(&sender); err != nil {
				return err
			}
		}
		return tx.Delete(&fr).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xử lý được lời mời"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xử lý lời mời"})
}

// RemoveFriend gỡ bạn bè cả hai chiều; gọi lại lần nữa vẫn thành công
func RemoveFriend(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var other models.NguoiDung
	if err := config.DB.First(&other, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
		return
	}

	// Xóa hai chiều trong một transaction; chiều nào không tồn tại thì bỏ qua
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&u).Association("Friends").Delete(&other); err != nil {
			return err
		}
		return tx.Model(&other).Association("Friends").Delete(&u)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không gỡ được bạn bè"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã gỡ bạn bè"})
}
