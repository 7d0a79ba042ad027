package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// 订单生命周期状态码
const (
	OrderStatusPending    = "pending"    // 待确认
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusDelivering = "delivering" // 派送中
	OrderStatusDelivered  = "delivered"  // 已签收（终态）
	OrderStatusCancelled  = "cancelled"  // 已取消（终态，仅能从 pending 进入）
)

// DefaultShippingFee 默认运费（最小货币单位）
const DefaultShippingFee = 5

// statusTransitions 合法的状态流转表
// pending → processing / cancelled
// processing → delivering
// delivering → delivered
// delivered / cancelled 为终态
var statusTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusDelivering},
	OrderStatusDelivering: {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransition 校验状态流转是否合法
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ==================== OrderStatus 订单状态字典 ====================

// OrderStatus 订单状态字典表
// code 稳定不变供程序判断，label/color/icon 供前端展示，order_number 控制展示顺序。
// 启动时 seed 一次，订单通过外键引用。
type OrderStatus struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Code        string `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Label       string `gorm:"size:64;not null" json:"label"`
	Color       string `gorm:"size:16" json:"color"`
	Icon        string `gorm:"size:32" json:"icon"`
	OrderNumber int    `gorm:"not null" json:"order_number"`
}

func (OrderStatus) TableName() string {
	return "order_statuses"
}

// ==================== Order 订单主表 ====================

// Order 订单
// 金额、地址、收件人等字段均为下单时刻的快照，创建后不再重算，
// 图书后续改价不影响历史订单。唯一可变的是 status_id。
type Order struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   int64 `gorm:"index;not null" json:"user_id"`
	StatusID int64 `gorm:"index;not null" json:"status_id"`

	// 金额快照（最小货币单位）
	// 不变式：Total = Subtotal + ShippingFee，创建时成立，此后不重算
	Subtotal    int64 `gorm:"not null" json:"subtotal"`
	ShippingFee int64 `gorm:"not null" json:"shipping_fee"`
	Total       int64 `gorm:"not null" json:"total"`

	// 收货信息快照
	Address       string            `gorm:"type:text;not null" json:"address"`
	RecipientInfo datatypes.JSONMap `gorm:"type:jsonb" json:"recipient_info"`

	PaymentMethod  string `gorm:"size:64" json:"payment_method"`
	ShippingMethod string `gorm:"size:64" json:"shipping_method"`
	Note           string `gorm:"type:text" json:"note"`

	OrderDate time.Time `gorm:"not null" json:"order_date"`

	// 关联
	Status *OrderStatus `gorm:"foreignKey:StatusID" json:"status"`
	Items  []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	User   *User        `gorm:"foreignKey:UserID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// StatusCode 当前状态码，Status 未预加载时为空串
func (o *Order) StatusCode() string {
	if o.Status == nil {
		return ""
	}
	return o.Status.Code
}

// CanCancel 仅 pending 状态的订单可以被用户取消
func (o *Order) CanCancel() bool {
	return o.StatusCode() == OrderStatusPending
}

// ==================== OrderItem 订单明细 ====================

// OrderItem 订单明细
// price / subtotal 是下单时刻的取价快照，创建后永不修改。
// book_id 不做级联删除：有明细引用的图书删除时需要先显式清理明细，
// 保证历史订单可追溯（见 book 删除逻辑）。
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	OrderID  int64 `gorm:"index;not null" json:"order_id"`
	BookID   int64 `gorm:"index;not null" json:"book_id"`
	Quantity int   `gorm:"not null" json:"quantity"`

	// 下单时单价与行小计，subtotal = price * quantity
	Price    int64 `gorm:"not null" json:"price"`
	Subtotal int64 `gorm:"not null" json:"subtotal"`

	Book *Book `gorm:"foreignKey:BookID" json:"book"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
