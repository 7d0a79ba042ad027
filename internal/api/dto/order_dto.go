package dto

// ==================== 下单 ====================

// OrderItemInput 下单行：图书 + 数量
type OrderItemInput struct {
	BookID   int64 `json:"book_id" binding:"required,gt=0"`
	Quantity int   `json:"quantity" binding:"required,gte=1"`
}

// PlaceOrderRequest 下单请求
// 金额一律由服务端按当前价重算，请求里不接受 total / subtotal
type PlaceOrderRequest struct {
	Items          []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
	Address        string                 `json:"address" binding:"required,min=10"`
	Recipient      map[string]interface{} `json:"recipient" binding:"omitempty"`
	PaymentMethod  string                 `json:"payment_method" binding:"omitempty,max=64"`
	ShippingMethod string                 `json:"shipping_method" binding:"omitempty,max=64"`
	Note           string                 `json:"note" binding:"omitempty,max=500"`
	ShippingFee    *int64                 `json:"shipping_fee" binding:"omitempty,gte=0"`
}

// ==================== 状态维护（管理员） ====================

// UpdateOrderStatusRequest 更新订单状态请求
// status 可以是状态的 label 也可以是 code
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,max=64"`
}

// ==================== 后台列表 ====================

// AdminOrderListRequest 后台订单列表查询参数
type AdminOrderListRequest struct {
	Status   string `form:"status" binding:"omitempty,max=32"`
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}
