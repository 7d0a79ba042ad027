package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务：下单、取消、后台状态流转
type OrderService struct {
	orderRepo  repository.OrderRepository
	statusRepo repository.OrderStatusRepository
	bookRepo   repository.BookRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	statusRepo repository.OrderStatusRepository,
	bookRepo repository.BookRepository,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		statusRepo: statusRepo,
		bookRepo:   bookRepo,
	}
}

// ==================== 下单 ====================

// PlaceOrder 下单
// 流程：
//  1. 逐条解析下单行，取图书当前价做快照；任何一条引用了不存在的图书，
//     整单拒绝（422），不做静默跳过
//  2. subtotal = Σ(当前单价 × 数量)；运费取请求值，缺省 5；
//     total 一律服务端算 subtotal + 运费，不信任客户端金额
//  3. 解析（必要时补建）pending 状态行
//  4. 订单主表 + 全部明细在单个事务内落库，失败整体回滚，
//     不允许出现没有明细的订单
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, req *dto.PlaceOrderRequest) (*model.Order, error) {
	// 不依赖上层 binding，服务层自己兜底空单
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	var subtotal int64
	for _, in := range req.Items {
		book, err := s.bookRepo.GetByID(ctx, in.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: book %d", ErrUnknownOrderItem, in.BookID)
			}
			return nil, err
		}

		lineSubtotal := book.Price * int64(in.Quantity)
		items = append(items, model.OrderItem{
			BookID:   book.ID,
			Quantity: in.Quantity,
			Price:    book.Price,
			Subtotal: lineSubtotal,
		})
		subtotal += lineSubtotal
	}

	shippingFee := int64(model.DefaultShippingFee)
	if req.ShippingFee != nil {
		shippingFee = *req.ShippingFee
	}

	pending, err := s.statusRepo.GetOrCreateByCode(ctx, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:         userID,
		StatusID:       pending.ID,
		Subtotal:       subtotal,
		ShippingFee:    shippingFee,
		Total:          subtotal + shippingFee,
		Address:        req.Address,
		RecipientInfo:  req.Recipient,
		PaymentMethod:  req.PaymentMethod,
		ShippingMethod: req.ShippingMethod,
		Note:           req.Note,
		OrderDate:      time.Now(),
		Items:          items,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	zap.L().Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int("items", len(items)),
		zap.Int64("total", order.Total))

	return s.loadOrder(ctx, order.ID)
}

// ==================== 查询 ====================

// ListMyOrders 当前用户的订单，新单在前
func (s *OrderService) ListMyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		fillOrderImages(&orders[i])
	}
	return orders, nil
}

// AdminListOrders 后台订单列表，分页，新单在前
func (s *OrderService) AdminListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		fillOrderImages(&orders[i])
	}
	return orders, total, nil
}

// ==================== 取消 ====================

// CancelOrder 用户取消订单
// 查询以 user_id 限定：别人的订单和不存在的订单一样是 ErrOrderNotFound（404），
// 不泄露订单是否存在。只有 pending 状态可取消。
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !order.CanCancel() {
		return nil, ErrOrderNotCancellable
	}

	cancelled, err := s.statusRepo.GetOrCreateByCode(ctx, model.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, cancelled.ID); err != nil {
		return nil, err
	}

	zap.L().Info("order cancelled", zap.Int64("order_id", orderID), zap.Int64("user_id", userID))
	return s.loadOrder(ctx, order.ID)
}

// ==================== 状态维护（管理员） ====================

// UpdateStatus 后台更新订单状态
// 状态标识按 label 或 code 匹配；不在字典里报"invalid status value"；
// 不符合流转表（pending→processing/cancelled, processing→delivering,
// delivering→delivered）的变更一律拒绝
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, statusValue string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	next, err := s.statusRepo.GetByLabelOrCode(ctx, statusValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidStatusValue
		}
		return nil, err
	}

	if !model.CanTransition(order.StatusCode(), next.Code) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.StatusCode(), next.Code)
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, next.ID); err != nil {
		return nil, err
	}

	zap.L().Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("from", order.StatusCode()),
		zap.String("to", next.Code))
	return s.loadOrder(ctx, order.ID)
}

// ==================== 内部 ====================

// loadOrder 重新加载全量关联的订单
func (s *OrderService) loadOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	fillOrderImages(order)
	return order, nil
}

// fillOrderImages 明细里的图书封面兜底
func fillOrderImages(order *model.Order) {
	for i := range order.Items {
		if order.Items[i].Book != nil {
			order.Items[i].Book.FillDefaultImage()
		}
	}
}

// ==================== 错误定义 ====================

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrUnknownOrderItem    = errors.New("order contains an unknown book")
	ErrOrderNotCancellable = errors.New("only pending orders can be cancelled")
	ErrInvalidStatusValue  = errors.New("invalid status value")
	ErrIllegalTransition   = errors.New("illegal status transition")
)
