package controller

import (
	"errors"
	"net/http"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register 注册
// @Summary 注册新用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  false,
			"message": err.Error(),
		})
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrInvalidDateOfBirth):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to register user"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "User registered successfully",
		"data":    resp,
	})
}

// Login 登录
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  false,
			"message": err.Error(),
		})
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": err.Error()})
		case errors.Is(err, service.ErrAccountDisabled):
			ctx.JSON(http.StatusForbidden, gin.H{"status": false, "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to login"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"data":    resp,
	})
}

// Logout 登出，吊销当前令牌
// POST /logout
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), middleware.GetTokenID(ctx)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to logout"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Logged out",
	})
}
