package controller

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== BookController 图书控制器 ====================

// BookController 图书控制器，查询公开，维护仅管理员
type BookController struct {
	bookService *service.BookService
}

// NewBookController 创建图书控制器
func NewBookController(bookService *service.BookService) *BookController {
	return &BookController{bookService: bookService}
}

// List 图书列表
// GET /books
func (c *BookController) List(ctx *gin.Context) {
	books, err := c.bookService.ListBooks(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to list books"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": books})
}

// Get 图书详情
// GET /books/:id
func (c *BookController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	book, err := c.bookService.GetBook(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Book not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load book"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": book})
}

// Create 新建图书
// POST /admin/books
func (c *BookController) Create(ctx *gin.Context) {
	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	book, err := c.bookService.CreateBook(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to create book"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "Book created successfully",
		"data":    book,
	})
}

// Update 更新图书
// PUT /admin/books/:id
func (c *BookController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	book, err := c.bookService.UpdateBook(ctx.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Book not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to update book"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Book updated successfully",
		"data":    book,
	})
}

// Delete 删除图书及其全部引用（分类/标签关联、购物车行、订单明细、评价）
// DELETE /admin/books/:id
func (c *BookController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	if err := c.bookService.DeleteBook(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Book not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to delete book"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Book deleted successfully",
	})
}
