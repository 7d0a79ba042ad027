package dto

// ==================== 购物车 ====================

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	BookID   int64 `json:"book_id" binding:"required,gt=0"`
	Quantity int   `json:"quantity" binding:"required,gte=1"`
}

// UpdateCartItemRequest 改量请求，数量不允许降到 1 以下
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}
