package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/middleware"
	"github.com/vnkhanh/social-server/models"
	"github.com/vnkhanh/social-server/utils"
)

// CreateInvitation mời một người dùng tham gia event.
// Không chặn trùng: mời lại vẫn tạo bản ghi mới, mỗi bản ghi hiện riêng trong feed.
func CreateInvitation(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req struct {
		ReceiverID uint `json:"receiver_id" binding:"required"`
		EventID    uint `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	var receiver models.NguoiDung
	if err := config.DB.First(&receiver, req.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, req.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	inv := models.Invitation{
		SenderID:   u.ID,
		ReceiverID: receiver.ID,
		EventID:    ev.ID,
	}
	if err := config.DB.Create(&inv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không gửi được lời mời"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          inv.ID,
		"sender_id":   inv.SenderID,
		"receiver_id": inv.ReceiverID,
		"event_id":    inv.EventID,
		"created_at":  inv.CreatedAt,
	})
}

// InviteByEmail gửi lời mời qua email cho người chưa có tài khoản
func InviteByEmail(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req struct {
		Email   string `json:"email" binding:"required,email"`
		EventID uint   `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, req.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	body := fmt.Sprintf("%s %s mời bạn tham gia \"%s\" lúc %s.\nTải app và đăng ký để tham gia nhé!",
		u.Ho, u.Ten, ev.Title, ev.StartTime.Format("02/01/2006 15:04"))
	if err := utils.SendMail(req.Email, "Lời mời tham gia event", body); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Gửi mail thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã gửi lời mời qua email"})
}

// ListInvitations liệt kê lời mời gửi tới user (chỉ đọc, không đánh dấu seen)
func ListInvitations(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var invitations []models.Invitation
	if err := config.DB.Where("receiver_id = ?", u.ID).
		Preload("Sender").
		Preload("Event").
		Preload("Event.Creator").
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được lời mời"})
		return
	}

	out := make([]gin.H, 0, len(invitations))
	for i := range invitations {
		out = append(out, invitationJSON(&invitations[i]))
	}
	c.JSON(http.StatusOK, out)
}

// MarkInvitationsSeen đánh dấu đã xem toàn bộ lời mời gửi tới user
func MarkInvitationsSeen(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	if err := config.DB.Model(&models.Invitation{}).
		Where("receiver_id = ? AND seen = ?", u.ID, false).
		Update("seen", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được trạng thái"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã đánh dấu đã xem"})
}

func AcceptInvitation(c *gin.Context) {
	respondToInvitation(c, true)
}

func RejectInvitation(c *gin.Context) {
	respondToInvitation(c, false)
}

// respondToInvitation: chỉ người nhận được phản hồi; accept thêm attendance
// rồi xóa lời mời trong cùng một transaction, reject chỉ xóa.
func respondToInvitation(c *gin.Context, accept bool) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var inv models.Invitation
	if err := config.DB.First(&inv, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy lời mời"})
		return
	}

	if inv.ReceiverID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn không có quyền xử lý lời mời này"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if accept {
			var ev models.Event
			if err := tx.First(&ev, inv.EventID).Error; err != nil {
				return err
			}
			// Append là upsert: đã tham gia rồi thì không thêm dòng mới
			if err := tx.Model(&ev).Association("Attenders").Append(&u); err != nil {
				return err
			}
		}
		return tx.Delete(&inv).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xử lý được lời mời"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xử lý lời mời"})
}
