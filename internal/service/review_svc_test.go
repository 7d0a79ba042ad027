package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(repository.NewReviewRepository(db), repository.NewBookRepository(db))
}

func TestReviewService_Submit(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	user := mustCreateUser(t, db, "评价人", "review@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "被评价的书", 30)

	t.Run("首次提交", func(t *testing.T) {
		review, err := svc.Submit(testCtx(), user.ID, book.ID, &dto.SubmitReviewRequest{
			Rating: 4, Comment: "还不错",
		})
		if err != nil {
			t.Fatalf("提交失败: %v", err)
		}
		if review.Rating != 4 {
			t.Errorf("评分错误: got %d", review.Rating)
		}
	})

	t.Run("重复提交覆盖旧评价", func(t *testing.T) {
		_, err := svc.Submit(testCtx(), user.ID, book.ID, &dto.SubmitReviewRequest{
			Rating: 2, Comment: "再看降分了",
		})
		if err != nil {
			t.Fatalf("提交失败: %v", err)
		}

		// 始终只有一行
		var count int64
		db.Model(&model.Review{}).Where("book_id = ? AND user_id = ?", book.ID, user.ID).Count(&count)
		if count != 1 {
			t.Fatalf("评价行数错误: got %d, want 1", count)
		}

		var latest model.Review
		db.Where("book_id = ? AND user_id = ?", book.ID, user.ID).First(&latest)
		if latest.Rating != 2 || latest.Comment != "再看降分了" {
			t.Errorf("评价未覆盖: %+v", latest)
		}
	})

	t.Run("评分超出范围拒绝", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Submit(testCtx(), user.ID, book.ID, &dto.SubmitReviewRequest{Rating: rating})
			if !errors.Is(err, ErrInvalidRating) {
				t.Fatalf("评分 %d: 期望 ErrInvalidRating, got %v", rating, err)
			}
		}

		// 之前的评价不能被非法评分覆盖
		var latest model.Review
		db.Where("book_id = ? AND user_id = ?", book.ID, user.ID).First(&latest)
		if latest.Rating != 2 {
			t.Errorf("非法评分不应落库: got %d", latest.Rating)
		}
	})

	t.Run("评论超长拒绝", func(t *testing.T) {
		_, err := svc.Submit(testCtx(), user.ID, book.ID, &dto.SubmitReviewRequest{
			Rating:  3,
			Comment: strings.Repeat("赞", 1001),
		})
		if !errors.Is(err, ErrCommentTooLong) {
			t.Fatalf("期望 ErrCommentTooLong, got %v", err)
		}
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := svc.Submit(testCtx(), user.ID, 999999, &dto.SubmitReviewRequest{Rating: 5})
		if !errors.Is(err, ErrBookNotFound) {
			t.Fatalf("期望 ErrBookNotFound, got %v", err)
		}
	})
}

func TestReviewService_BookReviews(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	book := mustCreateBook(t, db, "均分测试书", 18)

	t.Run("无评价时均分为nil", func(t *testing.T) {
		reviews, avg, count, err := svc.BookReviews(testCtx(), book.ID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if len(reviews) != 0 || count != 0 {
			t.Errorf("应无评价: len=%d count=%d", len(reviews), count)
		}
		if avg != nil {
			t.Errorf("无评价时均分应为 nil, got %v", *avg)
		}
	})

	t.Run("均分四舍五入到一位小数", func(t *testing.T) {
		for i, rating := range []int{5, 4, 4} {
			u := mustCreateUser(t, db, "评分人", fmt.Sprintf("rater-%d@test.com", i), "secret123", model.RoleCustomer)
			if _, err := svc.Submit(testCtx(), u.ID, book.ID, &dto.SubmitReviewRequest{Rating: rating}); err != nil {
				t.Fatalf("提交失败: %v", err)
			}
		}

		_, avg, count, err := svc.BookReviews(testCtx(), book.ID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if count != 3 {
			t.Errorf("总数错误: got %d, want 3", count)
		}
		// (5+4+4)/3 = 4.333... → 4.3
		if avg == nil || *avg != 4.3 {
			t.Errorf("均分错误: got %v, want 4.3", avg)
		}
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, _, _, err := svc.BookReviews(testCtx(), 999999)
		if !errors.Is(err, ErrBookNotFound) {
			t.Fatalf("期望 ErrBookNotFound, got %v", err)
		}
	})
}

func TestReviewService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	author := mustCreateUser(t, db, "作者", "author@test.com", "secret123", model.RoleCustomer)
	other := mustCreateUser(t, db, "路人", "stranger@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "删评测试书", 22)

	review, err := svc.Submit(testCtx(), author.ID, book.ID, &dto.SubmitReviewRequest{Rating: 3})
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}

	t.Run("他人删除被拒", func(t *testing.T) {
		err := svc.Delete(testCtx(), other.ID, review.ID)
		if !errors.Is(err, ErrNotReviewOwner) {
			t.Fatalf("期望 ErrNotReviewOwner, got %v", err)
		}
	})

	t.Run("本人可删", func(t *testing.T) {
		if err := svc.Delete(testCtx(), author.ID, review.ID); err != nil {
			t.Fatalf("删除失败: %v", err)
		}
	})

	t.Run("删除不存在的评价", func(t *testing.T) {
		err := svc.Delete(testCtx(), author.ID, review.ID)
		if !errors.Is(err, ErrReviewNotFound) {
			t.Fatalf("期望 ErrReviewNotFound, got %v", err)
		}
	})
}
