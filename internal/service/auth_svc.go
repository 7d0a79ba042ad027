package service

import (
	"context"
	"errors"
	"time"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/middleware"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dateLayout 生日等日期字段的传输格式
const dateLayout = "2006-01-02"

// ==================== AuthService 认证服务 ====================

// AuthService 认证服务
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *AuthService {
	return &AuthService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// ==================== 注册 ====================

// Register 注册新用户，成功后直接签发令牌（注册即登录）
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		DateOfBirth: &dob,
		Role:        model.RoleCustomer,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("user registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return s.issueToken(ctx, user)
}

// ==================== 登录 / 登出 ====================

// Login 登录
// 凭证错误统一返回 ErrInvalidCredentials，不区分"邮箱不存在"和"密码错误"；
// 已停用账号返回 ErrAccountDisabled（403）
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issueToken(ctx, user)
}

// Logout 登出：删除当前令牌记录即吊销
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.tokenRepo.Delete(ctx, tokenID)
}

// ==================== 内部 ====================

// issueToken 签发 JWT 并落一条令牌记录（jti = 记录主键）
func (s *AuthService) issueToken(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	tokenID := uuid.NewString()
	signed, expiresAt, err := middleware.GenerateAccessToken(tokenID, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	record := &model.AccessToken{
		ID:        tokenID,
		UserID:    user.ID,
		Name:      "auth_token",
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      toUserInfo(user),
	}, nil
}

// ==================== 错误定义 ====================

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("your account has been deactivated, please contact the administrator")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
)
