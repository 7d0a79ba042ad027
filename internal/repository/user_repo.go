package repository

import (
	"context"
	"errors"

	"bookstore_api/internal/model"

	"gorm.io/gorm"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error

	// EmailTaken 邮箱是否已被其他用户占用
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// GetCurrentAdmin 获取当前管理员，不存在时返回 nil
	GetCurrentAdmin(ctx context.Context) (*model.User, error)

	// SetActive 切换启用状态；停用时同一事务内吊销该用户全部令牌
	SetActive(ctx context.Context, id int64, active bool) error

	// PromoteToAdmin 提升为管理员
	// 同一事务内：现任管理员（如有）降级为 customer 并吊销其全部令牌，
	// 目标用户升级为 admin 并强制启用
	PromoteToAdmin(ctx context.Context, id int64) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) GetCurrentAdmin(ctx context.Context) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("role = ?", model.RoleAdmin).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("id = ?", id).
			Update("is_active", active).Error; err != nil {
			return err
		}
		if !active {
			// 停用即强制下线
			if err := tx.Where("user_id = ?", id).
				Delete(&model.AccessToken{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) PromoteToAdmin(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先把现任管理员降级并强制下线
		var current model.User
		err := tx.Where("role = ?", model.RoleAdmin).First(&current).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Model(&current).Update("role", model.RoleCustomer).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", current.ID).
				Delete(&model.AccessToken{}).Error; err != nil {
				return err
			}
		}

		// 目标用户升级，顺带强制启用
		return tx.Model(&model.User{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"role":      model.RoleAdmin,
				"is_active": true,
			}).Error
	})
}
