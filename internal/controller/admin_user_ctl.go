package controller

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore_api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== AdminUserController 后台用户管理 ====================

// AdminUserController 后台用户管理控制器
type AdminUserController struct {
	userService *service.UserService
}

// NewAdminUserController 创建后台用户管理控制器
func NewAdminUserController(userService *service.UserService) *AdminUserController {
	return &AdminUserController{userService: userService}
}

// List 用户列表
// GET /admin/users
func (c *AdminUserController) List(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to list users"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": users})
}

// ToggleActive 切换启用状态
// 管理员账号禁止经此停用（403）；停用普通用户会强制其下线
// PATCH /admin/users/:id/toggle-active
func (c *AdminUserController) ToggleActive(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	info, err := c.userService.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "User not found"})
		case errors.Is(err, service.ErrAdminProtected):
			ctx.JSON(http.StatusForbidden, gin.H{"status": false, "message": "Cannot deactivate admin accounts"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to update user"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "User status updated successfully",
		"data":    info,
	})
}

// MakeAdmin 提升为管理员
// 现任管理员同一事务内降级并强制下线（全站唯一管理员规则）
// PATCH /admin/users/:id/make-admin
func (c *AdminUserController) MakeAdmin(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	info, err := c.userService.MakeAdmin(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "User not found"})
		case errors.Is(err, service.ErrAlreadyAdmin):
			ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to promote user"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "User has been promoted to admin. Previous admin has been demoted and logged out.",
		"data":    info,
	})
}

// Delete 删除用户
// DELETE /admin/users/:id
func (c *AdminUserController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "User not found"})
		case errors.Is(err, service.ErrAdminProtected):
			ctx.JSON(http.StatusForbidden, gin.H{"status": false, "message": "Cannot delete admin accounts"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to delete user"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "User deleted successfully",
	})
}
