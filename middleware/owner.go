package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/models"
)

const CtxEvent = "eventObj" // event đã nạp sẵn

// CheckEventOwner: nạp event vào context & xác thực người tạo
func CheckEventOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		// user hiện tại (đã được AuthJWT set vào context với key CtxUser)
		u := c.MustGet(CtxUser).(models.NguoiDung)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
			return
		}

		var ev models.Event
		if err := config.DB.First(&ev, id).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Event không tồn tại"})
			return
		}

		// Chỉ người tạo được thao tác
		if ev.CreatorID != u.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Bạn không có quyền thao tác event này"})
			return
		}

		// Đưa event vào context để controller dùng tiếp
		c.Set(CtxEvent, ev)
		c.Next()
	}
}
