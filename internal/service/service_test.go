package service

import (
	"context"
	"testing"

	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 测试基础设施 ====================

// newTestDB 内存库 + 全量迁移 + 状态字典
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{}, &model.AccessToken{},
		&model.Book{}, &model.Category{}, &model.Tag{}, &model.Publisher{},
		&model.CartItem{},
		&model.OrderStatus{}, &model.Order{}, &model.OrderItem{},
		&model.Review{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	if err := repository.SeedOrderStatuses(db); err != nil {
		t.Fatalf("状态字典初始化失败: %v", err)
	}

	return db
}

// mustCreateUser 建用户，密码明文传入，存库前做哈希
func mustCreateUser(t *testing.T, db *gorm.DB, name, email, password, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码哈希失败: %v", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

// mustCreateBook 建图书
func mustCreateBook(t *testing.T, db *gorm.DB, title string, price int64) *model.Book {
	t.Helper()

	book := &model.Book{Title: title, Price: price, Quantity: 100}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("创建图书失败: %v", err)
	}
	return book
}

// statusID 按 code 查状态行 ID
func statusID(t *testing.T, db *gorm.DB, code string) int64 {
	t.Helper()

	var status model.OrderStatus
	if err := db.Where("code = ?", code).First(&status).Error; err != nil {
		t.Fatalf("状态 %s 不存在: %v", code, err)
	}
	return status.ID
}

// forceOrderStatus 把订单直接置为指定状态，绕过流转校验（造测试场景用）
func forceOrderStatus(t *testing.T, db *gorm.DB, orderID int64, code string) {
	t.Helper()

	if err := db.Model(&model.Order{}).Where("id = ?", orderID).
		Update("status_id", statusID(t, db, code)).Error; err != nil {
		t.Fatalf("修改订单状态失败: %v", err)
	}
}

func testCtx() context.Context {
	return context.Background()
}
