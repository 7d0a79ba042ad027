package repository

import (
	"context"
	"time"

	"bookstore_api/internal/model"

	"gorm.io/gorm"
)

// ==================== TokenRepository 令牌仓库 ====================

// TokenRepository 令牌记录仓库接口
// 一条记录对应一个已签发的 JWT（主键 = jti），删除记录即吊销令牌
type TokenRepository interface {
	Create(ctx context.Context, token *model.AccessToken) error
	GetByID(ctx context.Context, id string) (*model.AccessToken, error)
	Delete(ctx context.Context, id string) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)

	// DeleteExpired 清理过期令牌记录，返回清理条数（定时任务用）
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository 创建令牌仓库
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByID(ctx context.Context, id string) (*model.AccessToken, error) {
	var token model.AccessToken
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccessToken{}).Error
}

func (r *tokenRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AccessToken{})
	return result.RowsAffected, result.Error
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&model.AccessToken{})
	return result.RowsAffected, result.Error
}
