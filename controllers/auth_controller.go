package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/models"
	"github.com/vnkhanh/social-server/utils"
)

type DangKyReq struct {
	Ho          string     `json:"ho"`
	Ten         string     `json:"ten" binding:"required,min=1"`
	Email       string     `json:"email" binding:"required,email"`
	MatKhau     string     `json:"mat_khau" binding:"required,min=6"`
	Location    string     `json:"location"`
	PhoneNumber string     `json:"phone_number"`
	Sex         string     `json:"sex"`
	Birthday    *time.Time `json:"birthday"`
	DeviceToken string     `json:"device_token"`
	IsIOS       bool       `json:"is_ios"`
}

func Register(c *gin.Context) {
	var req DangKyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.NguoiDung{}).Where("LOWER(email) = ?", strings.ToLower(req.Email)).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Email đã tồn tại"})
		return
	}

	hash, err := utils.HashPassword(req.MatKhau)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
		return
	}

	nd := models.NguoiDung{
		Ho:          req.Ho,
		Ten:         req.Ten,
		Email:       strings.ToLower(req.Email),
		MatKhau:     hash,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Sex:         req.Sex,
		Birthday:    req.Birthday,
		DeviceToken: req.DeviceToken,
		IsIOS:       req.IsIOS,
	}

	if err := config.DB.Create(&nd).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
		return
	}

	token, err := utils.GenerateToken(strconv.FormatUint(uint64(nd.ID), 10), "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  profileJSON(&nd),
	})
}

type DangNhapReq struct {
	Email   string `json:"email" binding:"required,email"`
	MatKhau string `json:"mat_khau" binding:"required"`
}

func Login(c *gin.Context) {
	var req DangNhapReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var nd models.NguoiDung
	if err := config.DB.Where("LOWER(email) = ?", strings.ToLower(req.Email)).First(&nd).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
		return
	}

	if !utils.CheckPassword(nd.MatKhau, req.MatKhau) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
		return
	}

	token, err := utils.GenerateToken(strconv.FormatUint(uint64(nd.ID), 10), "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  profileJSON(&nd),
	})
}

// GoogleLoginHandler xác thực ID token của Google rồi tìm/tạo user theo email
func GoogleLoginHandler(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Thiếu id_token"})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token không hợp lệ"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token không chứa email"})
		return
	}

	var nd models.NguoiDung
	err = config.DB.Where("LOWER(email) = ?", strings.ToLower(email)).First(&nd).Error
	if err != nil {
		// Chưa có tài khoản → tạo mới với mật khẩu ngẫu nhiên
		givenName, _ := payload.Claims["given_name"].(string)
		familyName, _ := payload.Claims["family_name"].(string)
		hash, hashErr := utils.HashPassword(utils.GeneratePassword(16))
		if hashErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
			return
		}
		nd = models.NguoiDung{
			Ho:      familyName,
			Ten:     givenName,
			Email:   strings.ToLower(email),
			MatKhau: hash,
		}
		if nd.Ten == "" {
			nd.Ten = email
		}
		if err := config.DB.Create(&nd).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
			return
		}
	}

	token, err := utils.GenerateToken(strconv.FormatUint(uint64(nd.ID), 10), "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  profileJSON(&nd),
	})
}

// ResetPassword đặt mật khẩu mới ngẫu nhiên và gửi qua mail.
// Mật khẩu đã đổi vẫn giữ nguyên kể cả khi gửi mail thất bại.
func ResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var nd models.NguoiDung
	if err := config.DB.Where("LOWER(email) = ?", strings.ToLower(req.Email)).First(&nd).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Không tìm thấy người dùng với email này"})
		return
	}

	password := utils.GeneratePassword(8)
	hash, err := utils.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
		return
	}

	if err := config.DB.Model(&nd).Update("mat_khau", hash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không cập nhật được mật khẩu"})
		return
	}

	body := fmt.Sprintf("Mật khẩu mới của bạn là: %s\nVui lòng đổi lại mật khẩu ngay khi đăng nhập.", password)
	if err := utils.SendMail(nd.Email, "Mật khẩu mới", body); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Đã đổi mật khẩu nhưng gửi mail thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Đã gửi mật khẩu mới qua email"})
}
