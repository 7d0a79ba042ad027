package service

import (
	"context"
	"errors"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"gorm.io/gorm"
)

// ==================== CartService 购物车服务 ====================

// CartService 购物车服务
// 所有操作都以当前登录用户为范围，改别人的购物车行和改不存在的行
// 表现完全一致（ErrCartItemNotFound → 404）
type CartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) *CartService {
	return &CartService{cartRepo: cartRepo, bookRepo: bookRepo}
}

// ListCart 当前用户的购物车，图书关联全量预加载
func (s *CartService) ListCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Book != nil {
			items[i].Book.FillDefaultImage()
		}
	}
	return items, nil
}

// AddItem 加购
// 已有 (user, book) 行则数量累加（created=false → 200），否则新建（created=true → 201）
func (s *CartService) AddItem(ctx context.Context, userID int64, req *dto.AddCartItemRequest) (*model.CartItem, bool, error) {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrBookNotFound
		}
		return nil, false, err
	}

	item, created, err := s.cartRepo.AddItem(ctx, userID, req.BookID, req.Quantity)
	if err != nil {
		return nil, false, err
	}
	if item.Book != nil {
		item.Book.FillDefaultImage()
	}
	return item, created, nil
}

// UpdateItem 修改某行数量
func (s *CartService) UpdateItem(ctx context.Context, userID, id int64, quantity int) (*model.CartItem, error) {
	if err := s.cartRepo.UpdateQuantity(ctx, userID, id, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	item, err := s.cartRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item.Book != nil {
		item.Book.FillDefaultImage()
	}
	return item, nil
}

// RemoveItem 删除某行
func (s *CartService) RemoveItem(ctx context.Context, userID, id int64) error {
	err := s.cartRepo.Remove(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartItemNotFound
	}
	return err
}

// ClearCart 清空购物车
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	return s.cartRepo.Clear(ctx, userID)
}

// ==================== 错误定义 ====================

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)
