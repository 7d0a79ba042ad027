package controller

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== CartController 购物车控制器 ====================

// CartController 购物车控制器，全部接口以当前登录用户为范围
type CartController struct {
	cartService *service.CartService
}

// NewCartController 创建购物车控制器
func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// List 当前用户的购物车
// GET /cart
func (c *CartController) List(ctx *gin.Context) {
	items, err := c.cartService.ListCart(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load cart"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": items})
}

// Add 加购
// 同一本书重复加购累加数量（200），首次加购新建行（201）
// POST /cart
func (c *CartController) Add(ctx *gin.Context) {
	var req dto.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	item, created, err := c.cartService.AddItem(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Book not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to add to cart"})
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	ctx.JSON(code, gin.H{"status": true, "data": item})
}

// Update 修改某行数量
// PUT /cart/:id
func (c *CartController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	var req dto.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	item, err := c.cartService.UpdateItem(ctx.Request.Context(), middleware.GetUserID(ctx), id, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Cart item not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to update cart item"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": item})
}

// Remove 删除某行
// DELETE /cart/:id
func (c *CartController) Remove(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	if err := c.cartService.RemoveItem(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Cart item not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to remove cart item"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "message": "Item removed"})
}

// Clear 清空购物车
// DELETE /cart/clear
func (c *CartController) Clear(ctx *gin.Context) {
	if err := c.cartService.ClearCart(ctx.Request.Context(), middleware.GetUserID(ctx)); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to clear cart"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "message": "Cart cleared"})
}
