package repository

import (
	"context"
	"errors"

	"bookstore_api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== CartRepository 购物车仓库 ====================

// CartRepository 购物车仓库接口
// 所有按行操作都以 user_id 限定范围：查不到和不属于自己统一表现为 ErrRecordNotFound，
// 不向调用方泄露"存在但不是你的"这一信息
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	GetByID(ctx context.Context, userID, id int64) (*model.CartItem, error)

	// AddItem 加购：已有 (user, book) 行则累加数量，否则新建
	// 返回的 created 标记用于区分 201 / 200
	AddItem(ctx context.Context, userID, bookID int64, quantity int) (item *model.CartItem, created bool, err error)

	// UpdateQuantity 改量（owner 范围内），行不存在返回 ErrRecordNotFound
	UpdateQuantity(ctx context.Context, userID, id int64, quantity int) error
	// Remove 删除单行（owner 范围内）
	Remove(ctx context.Context, userID, id int64) error
	// Clear 清空该用户购物车
	Clear(ctx context.Context, userID int64) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// withBook 预加载图书及其出版社、分类、标签
func (r *cartRepository) withBook(db *gorm.DB) *gorm.DB {
	return db.Preload("Book").
		Preload("Book.Publisher").
		Preload("Book.Categories").
		Preload("Book.Tags")
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.withBook(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepository) GetByID(ctx context.Context, userID, id int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.withBook(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, bookID int64, quantity int) (*model.CartItem, bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.CartItem
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created = errors.Is(err, gorm.ErrRecordNotFound)

		// (user_id, book_id) 唯一索引 + upsert：
		// 并发加购撞上时落到 DO UPDATE 分支累加，不会插出第二行
		item := model.CartItem{UserID: userID, BookID: bookID, Quantity: quantity}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
			}),
		}).Create(&item).Error
	})
	if err != nil {
		return nil, false, err
	}

	var item model.CartItem
	err = r.withBook(r.db.WithContext(ctx)).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&item).Error
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, id int64, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}
