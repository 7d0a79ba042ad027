package service

import (
	"errors"
	"testing"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) (*AuthService, repository.TokenRepository) {
	tokenRepo := repository.NewTokenRepository(db)
	return NewAuthService(repository.NewUserRepository(db), tokenRepo), tokenRepo
}

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:                 "测试用户",
		Email:                email,
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		DateOfBirth:          "1995-06-15",
	}
}

func TestAuthService_Register(t *testing.T) {
	db := newTestDB(t)
	svc, tokenRepo := newAuthService(db)

	t.Run("注册即登录", func(t *testing.T) {
		resp, err := svc.Register(testCtx(), registerReq("new@test.com"))
		if err != nil {
			t.Fatalf("注册失败: %v", err)
		}
		if resp.Token == "" {
			t.Error("注册应直接签发令牌")
		}
		if resp.User.Role != model.RoleCustomer {
			t.Errorf("新用户角色错误: got %s, want customer", resp.User.Role)
		}

		// 令牌记录落库，jti 可回查
		claims, err := middleware.ParseToken(resp.Token)
		if err != nil {
			t.Fatalf("解析令牌失败: %v", err)
		}
		if _, err := tokenRepo.GetByID(testCtx(), claims.ID); err != nil {
			t.Errorf("令牌记录未落库: %v", err)
		}
	})

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(testCtx(), registerReq("new@test.com"))
		if !errors.Is(err, ErrEmailExists) {
			t.Fatalf("期望 ErrEmailExists, got %v", err)
		}
	})

	t.Run("生日格式非法", func(t *testing.T) {
		req := registerReq("bad-dob@test.com")
		req.DateOfBirth = "15/06/1995"
		_, err := svc.Register(testCtx(), req)
		if !errors.Is(err, ErrInvalidDateOfBirth) {
			t.Fatalf("期望 ErrInvalidDateOfBirth, got %v", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(db)
	mustCreateUser(t, db, "登录用户", "login@test.com", "secret123", model.RoleCustomer)

	t.Run("正确凭证", func(t *testing.T) {
		resp, err := svc.Login(testCtx(), &dto.LoginRequest{Email: "login@test.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("登录失败: %v", err)
		}
		if resp.Token == "" {
			t.Error("登录未返回令牌")
		}
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(testCtx(), &dto.LoginRequest{Email: "login@test.com", Password: "wrong-pass"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("期望 ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("邮箱不存在与密码错误不可区分", func(t *testing.T) {
		_, err := svc.Login(testCtx(), &dto.LoginRequest{Email: "nobody@test.com", Password: "secret123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("期望 ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("停用账号拒绝登录", func(t *testing.T) {
		disabled := mustCreateUser(t, db, "停用用户", "disabled@test.com", "secret123", model.RoleCustomer)
		db.Model(&model.User{}).Where("id = ?", disabled.ID).Update("is_active", false)

		_, err := svc.Login(testCtx(), &dto.LoginRequest{Email: "disabled@test.com", Password: "secret123"})
		if !errors.Is(err, ErrAccountDisabled) {
			t.Fatalf("期望 ErrAccountDisabled, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	db := newTestDB(t)
	svc, tokenRepo := newAuthService(db)

	resp, err := svc.Register(testCtx(), registerReq("logout@test.com"))
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	claims, err := middleware.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}

	if err := svc.Logout(testCtx(), claims.ID); err != nil {
		t.Fatalf("登出失败: %v", err)
	}

	// 记录删除即吊销，中间件查不到记录会拒绝
	if _, err := tokenRepo.GetByID(testCtx(), claims.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("登出后令牌记录应不存在, got %v", err)
	}
}
