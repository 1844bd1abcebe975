package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/middleware"
	"github.com/vnkhanh/social-server/models"
	"github.com/vnkhanh/social-server/utils"
)

type createEventReq struct {
	Title       string    `json:"title" binding:"required,min=1"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	IsPrivate   bool      `json:"is_private"`
	Picture     string    `json:"picture"`
	Friends     []uint    `json:"friends"` // id bạn bè được mời kèm lúc tạo
}

// CreateEvent tạo event mới, kèm lời mời cho danh sách bạn bè nếu có
func CreateEvent(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	if err := utils.ValidateCoordinates(req.Lat, req.Lon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tọa độ không hợp lệ"})
		return
	}

	ev := models.Event{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   u.ID,
		StartTime:   req.StartTime,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Location:    req.Location,
		Type:        req.Type,
		IsPrivate:   req.IsPrivate,
		Picture:     req.Picture,
		ShareURL:    uuid.NewString(),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		// Mỗi bạn bè trong danh sách nhận một lời mời từ người tạo
		for _, friendID := range req.Friends {
			var receiver models.NguoiDung
			if err := tx.First(&receiver, friendID).Error; err != nil {
				return err
			}
			inv := models.Invitation{
				SenderID:   u.ID,
				ReceiverID: receiver.ID,
				EventID:    ev.ID,
			}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được event"})
		return
	}

	ev.Creator = u
	c.JSON(http.StatusCreated, eventJSON(&ev))
}

// DiscoverEvents lọc event theo khoảng cách + phạm vi riêng tư + từ khóa.
// Event riêng tư chỉ hiện khi người tạo là bạn bè của user.
func DiscoverEvents(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	lat, err := strconv.ParseFloat(c.DefaultQuery("lat", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "lat không hợp lệ"})
		return
	}
	lon, err := strconv.ParseFloat(c.DefaultQuery("lon", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "lon không hợp lệ"})
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
	if err != nil || radius < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "radius không hợp lệ"})
		return
	}
	if err := utils.ValidateCoordinates(lat, lon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tọa độ không hợp lệ"})
		return
	}

	friendIDs, err := friendIDsOf(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách bạn bè"})
		return
	}
	// IN () rỗng không hợp lệ trên mọi backend
	if len(friendIDs) == 0 {
		friendIDs = []uint{0}
	}

	query := config.DB.Model(&models.Event{}).
		Where("is_private = ? OR creator_id IN ?", false, friendIDs)

	if text := c.Query("text"); text != "" {
		pattern := "%" + strings.ToLower(text) + "%"
		query = query.
			Joins("JOIN nguoi_dungs ON nguoi_dungs.id = events.creator_id").
			Where(`LOWER(events.title) LIKE ? OR LOWER(events.description) LIKE ?
				OR LOWER(events.location) LIKE ? OR LOWER(nguoi_dungs.ho) LIKE ?
				OR LOWER(nguoi_dungs.ten) LIKE ?`,
				pattern, pattern, pattern, pattern, pattern)
	}

	var candidates []models.Event
	if err := query.Preload("Creator").Order("events.start_time DESC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách event"})
		return
	}

	// Lọc khoảng cách ở tầng ứng dụng: SQL đã thu hẹp theo phạm vi riêng tư
	// và từ khóa, phần còn lại tính haversine từng event.
	out := make([]gin.H, 0, len(candidates))
	for i := range candidates {
		ev := &candidates[i]
		km := utils.DistanceKm(lat, lon, ev.Lat, ev.Lon)
		if km <= radius {
			item := eventJSON(ev)
			item["distance_km"] = km
			out = append(out, item)
		}
	}
	c.JSON(http.StatusOK, out)
}

// GetEvent trả về chi tiết một event
func GetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.Preload("Creator").First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	c.JSON(http.StatusOK, eventJSON(&ev))
}

type updateEventReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	Lat         *float64   `json:"lat"`
	Lon         *float64   `json:"lon"`
	Location    *string    `json:"location"`
	Type        *string    `json:"type"`
	IsPrivate   *bool      `json:"is_private"`
	Picture     *string    `json:"picture"`
}

// UpdateEvent cập nhật từng field nếu có (chỉ người tạo, qua CheckEventOwner)
func UpdateEvent(c *gin.Context) {
	ev := c.MustGet(middleware.CtxEvent).(models.Event)

	var req updateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Dữ liệu không hợp lệ"})
		return
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.StartTime != nil {
		ev.StartTime = *req.StartTime
	}
	if req.Lat != nil || req.Lon != nil {
		lat, lon := ev.Lat, ev.Lon
		if req.Lat != nil {
			lat = *req.Lat
		}
		if req.Lon != nil {
			lon = *req.Lon
		}
		if err := utils.ValidateCoordinates(lat, lon); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Tọa độ không hợp lệ"})
			return
		}
		ev.Lat, ev.Lon = lat, lon
	}
	if req.Location != nil {
		ev.Location = *req.Location
	}
	if req.Type != nil {
		ev.Type = *req.Type
	}
	if req.IsPrivate != nil {
		ev.IsPrivate = *req.IsPrivate
	}
	if req.Picture != nil {
		ev.Picture = *req.Picture
	}

	if err := config.DB.Save(&ev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cập nhật event thành công", "data": ev})
}

// DeleteEvent xóa event cùng toàn bộ lời mời, reaction, comment, attendance
func DeleteEvent(c *gin.Context) {
	ev := c.MustGet(middleware.CtxEvent).(models.Event)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.EventReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", ev.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_attenders WHERE event_id = ?", ev.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&ev).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không xóa được event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa event"})
}

// EventsByFriends liệt kê event do bạn bè của user tạo
func EventsByFriends(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	friendIDs, err := friendIDsOf(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được danh sách bạn bè"})
		return
	}
	if len(friendIDs) == 0 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	var events []models.Event
	if err := config.DB.Where("creator_id IN ?", friendIDs).
		Preload("Creator").
		Order("start_time DESC").
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

// MyEvents liệt kê event do chính user tạo
func MyEvents(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var events []models.Event
	if err := config.DB.Where("creator_id = ?", u.ID).
		Preload("Creator").
		Order("start_time DESC").
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

// ListAttenders trả về danh sách người tham gia event
func ListAttenders(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.Preload("Attenders").First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	out := make([]gin.H, 0, len(ev.Attenders))
	for _, a := range ev.Attenders {
		out = append(out, personJSON(a))
	}
	c.JSON(http.StatusOK, out)
}

// AttendEvent đánh dấu user tham gia event (idempotent)
func AttendEvent(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	if err := config.DB.Model(&ev).Association("Attenders").Append(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tham gia được event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã tham gia event"})
}

// UnattendEvent bỏ tham gia event (idempotent)
func UnattendEvent(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	if err := config.DB.Model(&ev).Association("Attenders").Delete(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không bỏ tham gia được event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã bỏ tham gia event"})
}

// LikeEvent / DislikeEvent dùng chung reactToEvent
func LikeEvent(c *gin.Context) {
	reactToEvent(c, true)
}

func DislikeEvent(c *gin.Context) {
	reactToEvent(c, false)
}

// reactToEvent: get-or-create reaction theo cặp (person, event); lặp lại cùng
// reaction là no-op; đổi chiều thì chuyển một đơn vị giữa hai bộ đếm.
// Toàn bộ chạy trong transaction, bộ đếm cập nhật bằng increment nguyên tử.
func reactToEvent(c *gin.Context, liked bool) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var r models.EventReaction
		if err := tx.Where("event_id = ? AND person_id = ?", ev.ID, u.ID).
			FirstOrCreate(&r, models.EventReaction{EventID: ev.ID, PersonID: u.ID}).Error; err != nil {
			return err
		}

		if liked {
			if r.Liked {
				return nil // đã like rồi
			}
			if r.Disliked {
				if err := tx.Model(&models.Event{}).Where("id = ?", ev.ID).
					UpdateColumn("dislikes", gorm.Expr("dislikes - 1")).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&models.Event{}).Where("id = ?", ev.ID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			return tx.Model(&r).Updates(map[string]interface{}{"liked": true, "disliked": false}).Error
		}

		if r.Disliked {
			return nil // đã dislike rồi
		}
		if r.Liked {
			if err := tx.Model(&models.Event{}).Where("id = ?", ev.ID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Event{}).Where("id = ?", ev.ID).
			UpdateColumn("dislikes", gorm.Expr("dislikes + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&r).Updates(map[string]interface{}{"liked": false, "disliked": true}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không ghi nhận được reaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã ghi nhận reaction"})
}

// CreateComment thêm bình luận vào event
func CreateComment(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Thiếu nội dung bình luận"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	cm := models.Comment{
		EventID:  ev.ID,
		AuthorID: u.ID,
		Text:     req.Text,
	}
	if err := config.DB.Create(&cm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được bình luận"})
		return
	}

	cm.Author = u
	c.JSON(http.StatusCreated, commentJSON(&cm))
}

// ListComments trả về bình luận của event, mới nhất trước
func ListComments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var ev models.Event
	if err := config.DB.First(&ev, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
		return
	}

	var comments []models.Comment
	if err := config.DB.Where("event_id = ?", ev.ID).
		Preload("Author").
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không lấy được bình luận"})
		return
	}

	out := make([]gin.H, 0, len(comments))
	for i := range comments {
		out = append(out, commentJSON(&comments[i]))
	}
	c.JSON(http.StatusOK, out)
}
