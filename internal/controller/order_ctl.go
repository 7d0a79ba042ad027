package controller

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/repository"
	"bookstore_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 订单控制器
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Place 下单
// 金额全部由服务端计算，忽略客户端传入的任何总价
// @Summary 创建订单
// @Tags order
// @Accept json
// @Produce json
// @Param data body dto.PlaceOrderRequest true "订单信息"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /orders [post]
func (c *OrderController) Place(ctx *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	order, err := c.orderService.PlaceOrder(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownOrderItem) || errors.Is(err, service.ErrEmptyOrder) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to place order"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": true, "message": "Order placed successfully", "data": order})
}

// ListMine 当前用户的订单列表
// GET /orders
func (c *OrderController) ListMine(ctx *gin.Context) {
	orders, err := c.orderService.ListMyOrders(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load orders"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": orders})
}

// Cancel 取消自己的订单，仅 pending 状态可取消
// POST /orders/:id/cancel
func (c *OrderController) Cancel(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	order, err := c.orderService.CancelOrder(ctx.Request.Context(), middleware.GetUserID(ctx), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Order not found"})
		case errors.Is(err, service.ErrOrderNotCancellable):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": "Only pending orders can be cancelled"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to cancel order"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "message": "Order cancelled", "data": order})
}

// AdminList 管理端订单列表，支持按状态过滤与分页
// GET /admin/orders
func (c *OrderController) AdminList(ctx *gin.Context) {
	var req dto.AdminOrderListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	orders, total, err := c.orderService.AdminListOrders(ctx.Request.Context(), repository.OrderFilter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load orders"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": gin.H{"orders": orders, "total": total}})
}

// AdminUpdateStatus 管理端更新订单状态
// 状态值可以是 code 或展示 label，非法流转会被拒绝
// PUT /admin/orders/:id
func (c *OrderController) AdminUpdateStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	order, err := c.orderService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Order not found"})
		case errors.Is(err, service.ErrInvalidStatusValue):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": "Invalid status value"})
		case errors.Is(err, service.ErrIllegalTransition):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to update order status"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "message": "Order status updated", "data": order})
}
