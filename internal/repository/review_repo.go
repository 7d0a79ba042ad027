package repository

import (
	"context"

	"bookstore_api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== ReviewRepository 评价仓库 ====================

// ReviewRepository 评价仓库接口
type ReviewRepository interface {
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	ListAll(ctx context.Context) ([]model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)

	// Upsert 按 (book_id, user_id) 写入：已有评价则覆盖评分和评论（last write wins）
	Upsert(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error

	// Average 评分算术平均值和总条数；没有评价时 avg 返回 nil
	Average(ctx context.Context, bookID int64) (avg *float64, count int64, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Upsert(ctx context.Context, review *model.Review) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Omit("User", "Book").Create(review).Error
	if err != nil {
		return err
	}

	// upsert 撞到已有行时 review.ID 不一定回填，重查一次带上作者
	return r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ? AND user_id = ?", review.BookID, review.UserID).
		First(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepository) Average(ctx context.Context, bookID int64) (*float64, int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, 0, nil
	}

	var avg float64
	err = r.db.WithContext(ctx).Model(&model.Review{}).
		Where("book_id = ?", bookID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return nil, 0, err
	}
	return &avg, count, nil
}
