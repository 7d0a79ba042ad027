package model

import "time"

// ==================== AccessToken 登录令牌记录 ====================

// AccessToken 已签发的登录令牌
// JWT 本身无状态，但业务要求支持强制下线（停用账号、更换管理员时吊销全部令牌），
// 所以每次签发都落一条记录，ID 即 JWT 的 jti。记录不存在 = 令牌已吊销。
type AccessToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // uuid，与 JWT jti 一致
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:64;default:auth_token" json:"name"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}

// IsExpired 是否已过期
func (t *AccessToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
