package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/middleware"
	"github.com/vnkhanh/social-server/models"
)

// SendMessage gửi tin nhắn tới một người dùng.
// Không chặn tự nhắn cho chính mình.
func SendMessage(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("userId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var receiver models.NguoiDung
	if err := config.DB.First(&receiver, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Thiếu nội dung tin nhắn"})
		return
	}

	msg := models.ChatMessage{
		SenderID:   u.ID,
		ReceiverID: receiver.ID,
		Text:       req.Text,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không gửi được tin nhắn"})
		return
	}

	c.JSON(http.StatusCreated, messageJSON(&msg))
}

// GetThread trả về toàn bộ tin nhắn giữa user và một người khác, mới nhất trước
func GetThread(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("userId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var messages []models.ChatMessage
	if err := config.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			u.ID, id, id, u.ID).
		Order("id DESC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được tin nhắn"})
		return
	}

	out := make([]gin.H, 0, len(messages))
	for i := range messages {
		out = append(out, messageJSON(&messages[i]))
	}
	c.JSON(http.StatusOK, out)
}

// MarkThreadSeen đánh dấu đã xem các tin nhắn người kia gửi cho user trong thread
func MarkThreadSeen(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("userId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	if err := config.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND seen = ?", id, u.ID, false).
		Update("seen", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được trạng thái"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã đánh dấu đã xem"})
}

// InboxOverview: với mỗi người từng nhắn qua lại, trả về đúng tin nhắn mới nhất.
// Quét một lượt từ mới đến cũ, người nào gặp rồi thì bỏ qua các tin cũ hơn.
func InboxOverview(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var messages []models.ChatMessage
	if err := config.DB.
		Where("sender_id = ? OR receiver_id = ?", u.ID, u.ID).
		Order("id DESC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được tin nhắn"})
		return
	}

	type entry struct {
		companionID uint
		message     *models.ChatMessage
	}
	seen := make(map[uint]bool)
	entries := make([]entry, 0)
	for i := range messages {
		m := &messages[i]
		companionID := m.SenderID
		if companionID == u.ID {
			companionID = m.ReceiverID
		}
		if seen[companionID] {
			continue
		}
		seen[companionID] = true
		entries = append(entries, entry{companionID: companionID, message: m})
	}

	// Nạp hồ sơ companion một lần cho cả danh sách
	companionIDs := make([]uint, 0, len(entries))
	for _, e := range entries {
		companionIDs = append(companionIDs, e.companionID)
	}
	companions := make(map[uint]*models.NguoiDung)
	if len(companionIDs) > 0 {
		var users []models.NguoiDung
		if err := config.DB.Where("id IN ?", companionIDs).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được hồ sơ"})
			return
		}
		for i := range users {
			companions[users[i].ID] = &users[i]
		}
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		companion, ok := companions[e.companionID]
		if !ok {
			continue
		}
		out = append(out, gin.H{
			"companion": personJSON(companion),
			"message":   messageJSON(e.message),
		})
	}
	c.JSON(http.StatusOK, out)
}

// DeleteMessage: chỉ người gửi được xóa tin nhắn của mình
func DeleteMessage(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var msg models.ChatMessage
	if err := config.DB.First(&msg, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy tin nhắn"})
		return
	}

	if msg.SenderID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Bạn không có quyền xóa tin nhắn này"})
		return
	}

	if err := config.DB.Delete(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được tin nhắn"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa tin nhắn"})
}
