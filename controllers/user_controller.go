package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/middleware"
	"github.com/vnkhanh/social-server/models"
	"github.com/vnkhanh/social-server/utils"
)

// Me trả về hồ sơ của chính user kèm danh sách bạn bè
func Me(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var me models.NguoiDung
	if err := config.DB.Preload("Friends").First(&me, u.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được hồ sơ"})
		return
	}

	out := profileJSON(&me)
	friends := make([]gin.H, 0, len(me.Friends))
	for _, f := range me.Friends {
		friends = append(friends, friendJSON(f))
	}
	out["friends"] = friends

	c.JSON(http.StatusOK, out)
}

type capNhatHoSoReq struct {
	Ho          *string    `json:"ho"`
	Ten         *string    `json:"ten"`
	MatKhau     *string    `json:"mat_khau"`
	Location    *string    `json:"location"`
	PhoneNumber *string    `json:"phone_number"`
	Sex         *string    `json:"sex"`
	Birthday    *time.Time `json:"birthday"`
	Picture     *string    `json:"picture"`
	DeviceToken *string    `json:"device_token"`
	IsIOS       *bool      `json:"is_ios"`
}

// UpdateMe cập nhật từng field nếu có
func UpdateMe(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req capNhatHoSoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	if req.Ho != nil {
		u.Ho = *req.Ho
	}
	if req.Ten != nil {
		u.Ten = *req.Ten
	}
	if req.MatKhau != nil {
		if len(*req.MatKhau) < 6 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Mật khẩu tối thiểu 6 ký tự"})
			return
		}
		hash, err := utils.HashPassword(*req.MatKhau)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
			return
		}
		u.MatKhau = hash
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.Sex != nil {
		u.Sex = *req.Sex
	}
	if req.Birthday != nil {
		u.Birthday = req.Birthday
	}
	if req.Picture != nil {
		u.Picture = *req.Picture
	}
	if req.DeviceToken != nil {
		u.DeviceToken = *req.DeviceToken
	}
	if req.IsIOS != nil {
		u.IsIOS = *req.IsIOS
	}

	if err := config.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được hồ sơ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cập nhật hồ sơ thành công", "user": profileJSON(&u)})
}

// MyAttends liệt kê các event mà user tham gia, lọc theo khoảng thời gian nếu có
func MyAttends(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	query := config.DB.Model(&models.Event{}).
		Joins("JOIN event_attenders ON event_attenders.event_id = events.id").
		Where("event_attenders.nguoi_dung_id = ?", u.ID).
		Preload("Creator")

	if after := c.Query("after"); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "after không hợp lệ"})
			return
		}
		query = query.Where("events.start_time >= ?", t)
	}
	if before := c.Query("before"); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "before không hợp lệ"})
			return
		}
		query = query.Where("events.start_time <= ?", t)
	}

	var events []models.Event
	if err := query.Order("events.start_time DESC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách event"})
		return
	}

	out := make([]gin.H, 0, len(events))
	for i := range events {
		out = append(out, eventJSON(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetUser trả về hồ sơ công khai của một người dùng kèm bạn bè
func GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var nd models.NguoiDung
	if err := config.DB.Preload("Friends").First(&nd, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
		return
	}

	c.JSON(http.StatusOK, personWithFriendsJSON(&nd))
}

// SearchUsers tìm người dùng theo họ/tên (không phân biệt hoa thường)
func SearchUsers(c *gin.Context) {
	name := strings.ToLower(c.Query("name"))
	pattern := "%" + name + "%"

	var users []models.NguoiDung
	if err := config.DB.
		Where("LOWER(ho) LIKE ? OR LOWER(ten) LIKE ?", pattern, pattern).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tìm kiếm được"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, personJSON(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// UserAttends liệt kê event mà người dùng khác tham gia (từ 1 ngày trước trở đi)
func UserAttends(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var nd models.NguoiDung
	if err := config.DB.First(&nd, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng"})
		return
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	var events []models.Event
	if err := config.DB.Model(&models.Event{}).
		Joins("JOIN event_attenders ON event_attenders.event_id = events.id").
		Where("event_attenders.nguoi_dung_id = ? AND events.start_time >= ?", nd.ID, dayAgo).
		Preload("Creator").
		Order("events.start_time DESC").
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách event"})
		return
	}

	out := make([]gin.H, 0, len(events))
	for i := range events {
		out = append(out, eventJSON(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}
