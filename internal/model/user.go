package model

import (
	"time"

	"gorm.io/gorm"
)

// ==================== 用户角色常量 ====================

// 系统只有两种角色：admin (管理员，全站唯一) 和 customer (普通顾客)
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// ==================== User 用户 ====================

// User 商城用户
type User struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 基础信息
	Name        string `gorm:"size:255;not null" json:"name"`
	Email       string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	PhoneNumber string `gorm:"size:20" json:"phone_number"`

	// 性别: male / female / other
	Gender      string     `gorm:"size:10" json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`

	// 角色与状态
	// 注意：业务规则要求全站同一时刻只有一个 admin（见 user_svc.MakeAdmin）
	Role     string `gorm:"size:20;default:customer;index" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
