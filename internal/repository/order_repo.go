package repository

import (
	"context"

	"bookstore_api/internal/model"

	"gorm.io/gorm"
)

// ==================== 过滤条件 ====================

// OrderFilter 订单列表过滤条件（后台用）
type OrderFilter struct {
	Status   string
	Page     int
	PageSize int
}

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	// CreateWithItems 在单个事务内写入订单主表和全部明细
	// 任何一步失败整体回滚，绝不允许出现没有明细的订单
	CreateWithItems(ctx context.Context, order *model.Order) error

	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*model.Order, error)
	// GetByIDForUser owner 限定的查询，订单不存在和不属于该用户同样返回 ErrRecordNotFound
	GetByIDForUser(ctx context.Context, userID, id int64) (*model.Order, error)

	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)

	UpdateStatus(ctx context.Context, id, statusID int64) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// withRelations 统一预加载明细（含图书及其关联）和状态
func (r *orderRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Items").
		Preload("Items.Book").
		Preload("Items.Book.Publisher").
		Preload("Items.Book.Categories").
		Preload("Items.Book.Tags").
		Preload("Status")
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil

		if err := tx.Omit("Status", "User").Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("Book").Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Status").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithRelations(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.withRelations(r.db.WithContext(ctx)).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDForUser(ctx context.Context, userID, id int64) (*model.Order, error) {
	var order model.Order
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" {
		db = db.Joins("JOIN order_statuses ON order_statuses.id = orders.status_id").
			Where("order_statuses.code = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := r.withRelations(db).
		Preload("User").
		Order("orders.created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, statusID int64) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status_id", statusID).Error
}

// ==================== OrderStatusRepository 订单状态字典仓库 ====================

// OrderStatusRepository 订单状态字典仓库接口
type OrderStatusRepository interface {
	// GetOrCreateByCode 按 code 取状态行，不存在则按 seed 定义补建
	GetOrCreateByCode(ctx context.Context, code string) (*model.OrderStatus, error)
	// GetByLabelOrCode 按展示名或 code 匹配（先 label 后 code，取第一个命中）
	GetByLabelOrCode(ctx context.Context, value string) (*model.OrderStatus, error)
	List(ctx context.Context) ([]model.OrderStatus, error)
}

type orderStatusRepository struct {
	db *gorm.DB
}

// NewOrderStatusRepository 创建订单状态仓库
func NewOrderStatusRepository(db *gorm.DB) OrderStatusRepository {
	return &orderStatusRepository{db: db}
}

// seedStatuses 状态字典的种子定义，与前端展示约定一致
var seedStatuses = map[string]model.OrderStatus{
	model.OrderStatusPending:    {Code: model.OrderStatusPending, Label: "Pending Confirmation", Color: "#6c757d", Icon: "hourglass-split", OrderNumber: 1},
	model.OrderStatusProcessing: {Code: model.OrderStatusProcessing, Label: "Processing", Color: "#0d6efd", Icon: "gear", OrderNumber: 2},
	model.OrderStatusDelivering: {Code: model.OrderStatusDelivering, Label: "Out for Delivery", Color: "#f59e0b", Icon: "truck", OrderNumber: 3},
	model.OrderStatusDelivered:  {Code: model.OrderStatusDelivered, Label: "Delivered", Color: "#10b981", Icon: "check-circle", OrderNumber: 4},
	model.OrderStatusCancelled:  {Code: model.OrderStatusCancelled, Label: "Cancelled", Color: "#ef4444", Icon: "x-circle", OrderNumber: 5},
}

// SeedOrderStatuses 幂等写入全部状态字典行（启动和 seed 命令调用）
func SeedOrderStatuses(db *gorm.DB) error {
	for _, seed := range seedStatuses {
		status := seed
		err := db.Where("code = ?", status.Code).
			Assign(map[string]interface{}{
				"label":        seed.Label,
				"color":        seed.Color,
				"icon":         seed.Icon,
				"order_number": seed.OrderNumber,
			}).
			FirstOrCreate(&status).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *orderStatusRepository) GetOrCreateByCode(ctx context.Context, code string) (*model.OrderStatus, error) {
	status, ok := seedStatuses[code]
	if !ok {
		status = model.OrderStatus{Code: code, Label: code}
	}
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		FirstOrCreate(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *orderStatusRepository) GetByLabelOrCode(ctx context.Context, value string) (*model.OrderStatus, error) {
	var status model.OrderStatus
	err := r.db.WithContext(ctx).
		Where("label = ? OR code = ?", value, value).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *orderStatusRepository) List(ctx context.Context) ([]model.OrderStatus, error) {
	var statuses []model.OrderStatus
	err := r.db.WithContext(ctx).Order("order_number ASC").Find(&statuses).Error
	return statuses, err
}
