package model

import "time"

// ==================== CartItem 购物车条目 ====================

// CartItem 购物车条目
// (user_id, book_id) 唯一：同一本书重复加购是累加数量，不会产生第二行。
// 唯一索引配合 upsert 写入，并发加购也不会插出重复行。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   int64 `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"user_id"`
	BookID   int64 `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"book_id"`
	Quantity int   `gorm:"not null;default:1" json:"quantity"`

	Book *Book `gorm:"foreignKey:BookID" json:"book"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal 行小计（按图书当前价格计算，仅用于展示，下单时会重新取价快照）
func (c *CartItem) Subtotal() int64 {
	if c.Book == nil {
		return 0
	}
	return c.Book.Price * int64(c.Quantity)
}
