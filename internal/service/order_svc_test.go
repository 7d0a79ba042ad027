package service

import (
	"errors"
	"testing"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewOrderStatusRepository(db),
		repository.NewBookRepository(db),
	)
}

// ==================== 下单 ====================

func TestOrderService_PlaceOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := mustCreateUser(t, db, "买家", "buyer@test.com", "secret123", model.RoleCustomer)

	t.Run("金额由服务端计算", func(t *testing.T) {
		// 单价 25，数量 1，运费走默认值 5，总价必须是 30
		book := mustCreateBook(t, db, "Go 程序设计", 25)

		order, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items:   []dto.OrderItemInput{{BookID: book.ID, Quantity: 1}},
			Address: "朝阳区望京街道 100 号",
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}

		if order.Subtotal != 25 {
			t.Errorf("小计错误: got %d, want 25", order.Subtotal)
		}
		if order.ShippingFee != 5 {
			t.Errorf("运费错误: got %d, want 5", order.ShippingFee)
		}
		if order.Total != 30 {
			t.Errorf("总价错误: got %d, want 30", order.Total)
		}
		if order.StatusCode() != model.OrderStatusPending {
			t.Errorf("新订单状态错误: got %s, want pending", order.StatusCode())
		}
	})

	t.Run("多行订单小计累加", func(t *testing.T) {
		b1 := mustCreateBook(t, db, "书一", 10)
		b2 := mustCreateBook(t, db, "书二", 7)

		order, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items: []dto.OrderItemInput{
				{BookID: b1.ID, Quantity: 3},
				{BookID: b2.ID, Quantity: 2},
			},
			Address: "海淀区中关村大街 1 号",
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}

		// 10*3 + 7*2 = 44
		if order.Subtotal != 44 {
			t.Errorf("小计错误: got %d, want 44", order.Subtotal)
		}
		if len(order.Items) != 2 {
			t.Fatalf("明细行数错误: got %d, want 2", len(order.Items))
		}
		for _, item := range order.Items {
			if item.Subtotal != item.Price*int64(item.Quantity) {
				t.Errorf("行小计错误: %d != %d*%d", item.Subtotal, item.Price, item.Quantity)
			}
		}
	})

	t.Run("自定义运费", func(t *testing.T) {
		book := mustCreateBook(t, db, "书三", 100)
		fee := int64(20)

		order, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items:       []dto.OrderItemInput{{BookID: book.ID, Quantity: 1}},
			Address:     "西城区金融街 35 号",
			ShippingFee: &fee,
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}
		if order.Total != 120 {
			t.Errorf("总价错误: got %d, want 120", order.Total)
		}
	})

	t.Run("明细引用不存在的图书整单拒绝", func(t *testing.T) {
		book := mustCreateBook(t, db, "书四", 15)

		_, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items: []dto.OrderItemInput{
				{BookID: book.ID, Quantity: 1},
				{BookID: 999999, Quantity: 1},
			},
			Address: "东城区王府井大街 88 号",
		})
		if !errors.Is(err, ErrUnknownOrderItem) {
			t.Fatalf("期望 ErrUnknownOrderItem, got %v", err)
		}

		// 整单回滚，不能留下半个订单
		var count int64
		db.Model(&model.Order{}).Where("address = ?", "东城区王府井大街 88 号").Count(&count)
		if count != 0 {
			t.Errorf("拒绝的订单不应落库: got %d 条", count)
		}
	})

	t.Run("空明细拒绝", func(t *testing.T) {
		_, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items:   nil,
			Address: "海淀区学院路 5 号",
		})
		if !errors.Is(err, ErrEmptyOrder) {
			t.Fatalf("期望 ErrEmptyOrder, got %v", err)
		}

		var count int64
		db.Model(&model.Order{}).Where("address = ?", "海淀区学院路 5 号").Count(&count)
		if count != 0 {
			t.Errorf("空订单不应落库: got %d 条", count)
		}
	})

	t.Run("价格快照不随图书改价变化", func(t *testing.T) {
		book := mustCreateBook(t, db, "书五", 50)

		order, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items:   []dto.OrderItemInput{{BookID: book.ID, Quantity: 2}},
			Address: "浦东新区世纪大道 200 号",
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}

		// 改价
		db.Model(&model.Book{}).Where("id = ?", book.ID).Update("price", 80)

		reloaded, err := svc.orderRepo.GetByIDWithRelations(testCtx(), order.ID)
		if err != nil {
			t.Fatalf("重载订单失败: %v", err)
		}
		if reloaded.Items[0].Price != 50 {
			t.Errorf("快照价被改动: got %d, want 50", reloaded.Items[0].Price)
		}
		if reloaded.Subtotal != 100 {
			t.Errorf("订单小计被改动: got %d, want 100", reloaded.Subtotal)
		}
	})
}

// ==================== 取消 ====================

func TestOrderService_CancelOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	owner := mustCreateUser(t, db, "下单人", "owner@test.com", "secret123", model.RoleCustomer)
	other := mustCreateUser(t, db, "路人", "other@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "可取消的书", 30)

	place := func(t *testing.T) *model.Order {
		order, err := svc.PlaceOrder(testCtx(), owner.ID, &dto.PlaceOrderRequest{
			Items:   []dto.OrderItemInput{{BookID: book.ID, Quantity: 1}},
			Address: "天河区体育西路 10 号",
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}
		return order
	}

	t.Run("pending订单本人可取消", func(t *testing.T) {
		order := place(t)

		cancelled, err := svc.CancelOrder(testCtx(), owner.ID, order.ID)
		if err != nil {
			t.Fatalf("取消失败: %v", err)
		}
		if cancelled.StatusCode() != model.OrderStatusCancelled {
			t.Errorf("取消后状态错误: got %s", cancelled.StatusCode())
		}
	})

	t.Run("非pending订单不可取消", func(t *testing.T) {
		order := place(t)
		forceOrderStatus(t, db, order.ID, model.OrderStatusProcessing)

		_, err := svc.CancelOrder(testCtx(), owner.ID, order.ID)
		if !errors.Is(err, ErrOrderNotCancellable) {
			t.Fatalf("期望 ErrOrderNotCancellable, got %v", err)
		}
	})

	t.Run("别人的订单表现为不存在", func(t *testing.T) {
		order := place(t)

		_, err := svc.CancelOrder(testCtx(), other.ID, order.ID)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("期望 ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("不存在的订单", func(t *testing.T) {
		_, err := svc.CancelOrder(testCtx(), owner.ID, 999999)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("期望 ErrOrderNotFound, got %v", err)
		}
	})
}

// ==================== 状态流转 ====================

func TestOrderService_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := mustCreateUser(t, db, "买家", "flow@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "流转用书", 40)

	place := func(t *testing.T) *model.Order {
		order, err := svc.PlaceOrder(testCtx(), user.ID, &dto.PlaceOrderRequest{
			Items:   []dto.OrderItemInput{{BookID: book.ID, Quantity: 1}},
			Address: "鼓楼区中山北路 5 号",
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}
		return order
	}

	t.Run("完整正向流转", func(t *testing.T) {
		order := place(t)

		for _, code := range []string{
			model.OrderStatusProcessing,
			model.OrderStatusDelivering,
			model.OrderStatusDelivered,
		} {
			updated, err := svc.UpdateStatus(testCtx(), order.ID, code)
			if err != nil {
				t.Fatalf("流转到 %s 失败: %v", code, err)
			}
			if updated.StatusCode() != code {
				t.Errorf("流转后状态错误: got %s, want %s", updated.StatusCode(), code)
			}
		}
	})

	t.Run("按label匹配状态", func(t *testing.T) {
		order := place(t)

		updated, err := svc.UpdateStatus(testCtx(), order.ID, "Processing")
		if err != nil {
			t.Fatalf("按 label 流转失败: %v", err)
		}
		if updated.StatusCode() != model.OrderStatusProcessing {
			t.Errorf("状态错误: got %s", updated.StatusCode())
		}
	})

	t.Run("跳级流转被拒绝", func(t *testing.T) {
		order := place(t)

		// pending 直接跳 delivered
		_, err := svc.UpdateStatus(testCtx(), order.ID, model.OrderStatusDelivered)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("期望 ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("终态不可再流转", func(t *testing.T) {
		order := place(t)
		forceOrderStatus(t, db, order.ID, model.OrderStatusDelivered)

		_, err := svc.UpdateStatus(testCtx(), order.ID, model.OrderStatusProcessing)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Fatalf("期望 ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("未知状态值", func(t *testing.T) {
		order := place(t)

		_, err := svc.UpdateStatus(testCtx(), order.ID, "shipped-to-mars")
		if !errors.Is(err, ErrInvalidStatusValue) {
			t.Fatalf("期望 ErrInvalidStatusValue, got %v", err)
		}
	})
}

// ==================== 列表 ====================

func TestOrderService_Lists(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	u1 := mustCreateUser(t, db, "用户一", "u1@test.com", "secret123", model.RoleCustomer)
	u2 := mustCreateUser(t, db, "用户二", "u2@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "列表用书", 12)

	placeFor := func(t *testing.T, userID int64) *model.Order {
		order, err := svc.PlaceOrder(testCtx(), userID, &dto.PlaceOrderRequest{
			Items:   []dto.OrderItemInput{{BookID: book.ID, Quantity: 1}},
			Address: "武侯区人民南路四段 12 号",
		})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}
		return order
	}

	placeFor(t, u1.ID)
	placeFor(t, u1.ID)
	o3 := placeFor(t, u2.ID)

	t.Run("我的订单只含本人", func(t *testing.T) {
		orders, err := svc.ListMyOrders(testCtx(), u1.ID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("订单数错误: got %d, want 2", len(orders))
		}
		for _, o := range orders {
			if o.UserID != u1.ID {
				t.Errorf("混入他人订单: order %d belongs to %d", o.ID, o.UserID)
			}
		}
	})

	t.Run("后台列表按状态过滤", func(t *testing.T) {
		forceOrderStatus(t, db, o3.ID, model.OrderStatusProcessing)

		orders, total, err := svc.AdminListOrders(testCtx(), repository.OrderFilter{
			Status: model.OrderStatusProcessing,
		})
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if total != 1 || len(orders) != 1 {
			t.Fatalf("过滤结果错误: total=%d len=%d", total, len(orders))
		}
		if orders[0].ID != o3.ID {
			t.Errorf("过滤出错误的订单: got %d, want %d", orders[0].ID, o3.ID)
		}
	})

	t.Run("后台列表分页", func(t *testing.T) {
		orders, total, err := svc.AdminListOrders(testCtx(), repository.OrderFilter{
			Page: 1, PageSize: 2,
		})
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if total != 3 {
			t.Errorf("总数错误: got %d, want 3", total)
		}
		if len(orders) != 2 {
			t.Errorf("页大小错误: got %d, want 2", len(orders))
		}
	})
}
