package dto

import "time"

// ==================== 用户信息 ====================

// UserInfo 用户信息
type UserInfo struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ==================== 个人资料 ====================

// UpdateProfileRequest 修改个人资料请求
// 改密码时必须带 current_password，且 confirm_password 与 new_password 一致
type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"omitempty,max=255"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty"`

	CurrentPassword string `json:"current_password" binding:"omitempty"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=8,max=100"`
	ConfirmPassword string `json:"confirm_password" binding:"omitempty,eqfield=NewPassword"`
}
