package service

import (
	"errors"
	"testing"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewBookRepository(db))
}

func TestCartService_AddItem(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)
	user := mustCreateUser(t, db, "购物者", "cart@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "购物车测试书", 20)

	t.Run("首次加购新建行", func(t *testing.T) {
		item, created, err := svc.AddItem(testCtx(), user.ID, &dto.AddCartItemRequest{
			BookID: book.ID, Quantity: 2,
		})
		if err != nil {
			t.Fatalf("加购失败: %v", err)
		}
		if !created {
			t.Error("首次加购应返回 created=true")
		}
		if item.Quantity != 2 {
			t.Errorf("数量错误: got %d, want 2", item.Quantity)
		}
	})

	t.Run("重复加购数量累加", func(t *testing.T) {
		item, created, err := svc.AddItem(testCtx(), user.ID, &dto.AddCartItemRequest{
			BookID: book.ID, Quantity: 3,
		})
		if err != nil {
			t.Fatalf("加购失败: %v", err)
		}
		if created {
			t.Error("重复加购应返回 created=false")
		}
		if item.Quantity != 5 {
			t.Errorf("累加后数量错误: got %d, want 5", item.Quantity)
		}

		// 同一 (user, book) 只能有一行
		var count int64
		db.Model(&model.CartItem{}).Where("user_id = ? AND book_id = ?", user.ID, book.ID).Count(&count)
		if count != 1 {
			t.Errorf("购物车行数错误: got %d, want 1", count)
		}
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, _, err := svc.AddItem(testCtx(), user.ID, &dto.AddCartItemRequest{
			BookID: 999999, Quantity: 1,
		})
		if !errors.Is(err, ErrBookNotFound) {
			t.Fatalf("期望 ErrBookNotFound, got %v", err)
		}
	})
}

func TestCartService_OwnerScope(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)
	owner := mustCreateUser(t, db, "车主", "owner-cart@test.com", "secret123", model.RoleCustomer)
	other := mustCreateUser(t, db, "别人", "other-cart@test.com", "secret123", model.RoleCustomer)
	book := mustCreateBook(t, db, "归属测试书", 9)

	item, _, err := svc.AddItem(testCtx(), owner.ID, &dto.AddCartItemRequest{BookID: book.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("加购失败: %v", err)
	}

	t.Run("改别人的行表现为不存在", func(t *testing.T) {
		_, err := svc.UpdateItem(testCtx(), other.ID, item.ID, 5)
		if !errors.Is(err, ErrCartItemNotFound) {
			t.Fatalf("期望 ErrCartItemNotFound, got %v", err)
		}
	})

	t.Run("删别人的行表现为不存在", func(t *testing.T) {
		err := svc.RemoveItem(testCtx(), other.ID, item.ID)
		if !errors.Is(err, ErrCartItemNotFound) {
			t.Fatalf("期望 ErrCartItemNotFound, got %v", err)
		}
	})

	t.Run("本人可改可删", func(t *testing.T) {
		updated, err := svc.UpdateItem(testCtx(), owner.ID, item.ID, 7)
		if err != nil {
			t.Fatalf("修改失败: %v", err)
		}
		if updated.Quantity != 7 {
			t.Errorf("数量错误: got %d, want 7", updated.Quantity)
		}

		if err := svc.RemoveItem(testCtx(), owner.ID, item.ID); err != nil {
			t.Fatalf("删除失败: %v", err)
		}
	})
}

func TestCartService_Clear(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)
	u1 := mustCreateUser(t, db, "清空者", "clear@test.com", "secret123", model.RoleCustomer)
	u2 := mustCreateUser(t, db, "旁观者", "keep@test.com", "secret123", model.RoleCustomer)
	b1 := mustCreateBook(t, db, "清空书一", 5)
	b2 := mustCreateBook(t, db, "清空书二", 6)

	for _, bookID := range []int64{b1.ID, b2.ID} {
		if _, _, err := svc.AddItem(testCtx(), u1.ID, &dto.AddCartItemRequest{BookID: bookID, Quantity: 1}); err != nil {
			t.Fatalf("加购失败: %v", err)
		}
	}
	if _, _, err := svc.AddItem(testCtx(), u2.ID, &dto.AddCartItemRequest{BookID: b1.ID, Quantity: 1}); err != nil {
		t.Fatalf("加购失败: %v", err)
	}

	if err := svc.ClearCart(testCtx(), u1.ID); err != nil {
		t.Fatalf("清空失败: %v", err)
	}

	mine, _ := svc.ListCart(testCtx(), u1.ID)
	if len(mine) != 0 {
		t.Errorf("清空后仍有 %d 行", len(mine))
	}

	// 只清自己的，别人的购物车不受影响
	theirs, _ := svc.ListCart(testCtx(), u2.ID)
	if len(theirs) != 1 {
		t.Errorf("他人购物车被误删: got %d 行, want 1", len(theirs))
	}
}
