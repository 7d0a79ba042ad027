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

// ==================== ReviewController 书评控制器 ====================

// ReviewController 书评控制器
type ReviewController struct {
	reviewService *service.ReviewService
}

// NewReviewController 创建书评控制器
func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// ListByBook 某本书的全部书评与平均分
// GET /books/:id/reviews
func (c *ReviewController) ListByBook(ctx *gin.Context) {
	bookID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	reviews, avg, count, err := c.reviewService.BookReviews(ctx.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Book not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load reviews"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": gin.H{
		"reviews":        reviews,
		"average_rating": avg,
		"count":          count,
	}})
}

// Submit 提交或更新书评
// 同一用户对同一本书只保留一条书评，重复提交覆盖旧内容
// POST /books/:id/reviews
func (c *ReviewController) Submit(ctx *gin.Context) {
	bookID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	var req dto.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		return
	}

	review, err := c.reviewService.Submit(ctx.Request.Context(), middleware.GetUserID(ctx), bookID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Book not found"})
		case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrCommentTooLong):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"status": false, "message": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to submit review"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"status": true, "message": "Review submitted", "data": review})
}

// Delete 删除自己的书评
// DELETE /reviews/:id
func (c *ReviewController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid id"})
		return
	}

	if err := c.reviewService.Delete(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Review not found"})
		case errors.Is(err, service.ErrNotReviewOwner):
			ctx.JSON(http.StatusForbidden, gin.H{"status": false, "message": "You can only delete your own review"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to delete review"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": true, "message": "Review deleted"})
}

// AdminList 管理端全部书评
// GET /admin/feedbacks
func (c *ReviewController) AdminList(ctx *gin.Context) {
	reviews, err := c.reviewService.ListAll(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "failed to load reviews"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": true, "data": reviews})
}
