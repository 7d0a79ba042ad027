package controller

import (
	"errors"
	"net/http"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== UserController 用户控制器 ====================

// UserController 个人资料控制器
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile 获取个人资料
// GET /user/profile
func (c *UserController) GetProfile(ctx *gin.Context) {
	info, err := c.userService.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load profile"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": info})
}

// UpdateProfile 修改个人资料
// PUT /user/profile
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	info, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCurrentPassword),
			errors.Is(err, service.ErrNewPasswordRequired),
			errors.Is(err, service.ErrEmailExists),
			errors.Is(err, service.ErrInvalidDateOfBirth):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to update profile"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Profile updated successfully",
		"data":    info,
	})
}
