package dto

import "time"

// ==================== 注册 ====================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=6,max=100"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	PhoneNumber          string `json:"phone_number" binding:"omitempty,max=20"`
	Gender               string `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth          string `json:"date_of_birth" binding:"required"` // 2006-01-02
}

// ==================== 登录 ====================

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *UserInfo `json:"user"`
}
