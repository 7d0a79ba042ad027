package service

import (
	"context"
	"errors"
	"math"
	"unicode/utf8"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"gorm.io/gorm"
)

// ==================== ReviewService 评价服务 ====================

// ReviewService 图书评价服务
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

// BookReviews 某本书的全部评价 + 均分 + 总数
// 均分四舍五入到一位小数；没有任何评价时 average 为 nil（接口返回 null），不会除零
func (s *ReviewService) BookReviews(ctx context.Context, bookID int64) ([]model.Review, *float64, int64, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrBookNotFound
		}
		return nil, nil, 0, err
	}

	reviews, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, nil, 0, err
	}

	avg, count, err := s.reviewRepo.Average(ctx, bookID)
	if err != nil {
		return nil, nil, 0, err
	}
	if avg != nil {
		rounded := math.Round(*avg*10) / 10
		avg = &rounded
	}
	return reviews, avg, count, nil
}

// Submit 提交评价
// 同一 (user, book) 已有评价则覆盖评分和评论，始终只保留一行
// 评分和评论长度在服务层再校验一次，不依赖上层 binding
func (s *ReviewService) Submit(ctx context.Context, userID, bookID int64, req *dto.SubmitReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(req.Comment) > maxCommentLength {
		return nil, ErrCommentTooLong
	}

	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除评价，仅作者本人可删，其他人一律 403
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

// ListAll 全站评价（后台 feedback 页）
func (s *ReviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}

// ==================== 错误定义 ====================

// maxCommentLength 评论长度上限（按字符计）
const maxCommentLength = 1000

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotReviewOwner = errors.New("you can only delete your own review")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong = errors.New("comment must not exceed 1000 characters")
)
