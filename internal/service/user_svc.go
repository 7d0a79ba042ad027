package service

import (
	"context"
	"errors"
	"time"

	"bookstore_api/internal/api/dto"
	"bookstore_api/internal/model"
	"bookstore_api/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务：个人资料 + 后台用户管理
type UserService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *UserService {
	return &UserService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// ==================== 个人资料 ====================

// GetProfile 获取个人资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateProfile 修改个人资料
// 带了 current_password 或 new_password 任意一个就进入改密流程：
// 旧密码必须验证通过，新密码必须提供
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.CurrentPassword != "" || req.NewPassword != "" {
		if req.CurrentPassword == "" ||
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return nil, ErrInvalidCurrentPassword
		}
		if req.NewPassword == "" {
			return nil, ErrNewPasswordRequired
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if req.Email != "" && req.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(ctx, req.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		user.DateOfBirth = &dob
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// ==================== 后台用户管理 ====================

// ListUsers 用户列表（管理员）
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserInfo, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.UserInfo, len(users))
	for i := range users {
		list[i] = *toUserInfo(&users[i])
	}
	return list, nil
}

// ToggleActive 切换启用状态（管理员）
// 管理员账号不允许通过该入口停用；停用普通用户时吊销其全部令牌（强制下线）
func (s *UserService) ToggleActive(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, ErrAdminProtected
	}

	if err := s.userRepo.SetActive(ctx, id, !user.IsActive); err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	zap.L().Info("user active toggled",
		zap.Int64("user_id", id), zap.Bool("is_active", user.IsActive))
	return toUserInfo(user), nil
}

// MakeAdmin 提升用户为管理员（管理员）
// 业务规则：全站同一时刻只有一个管理员。
// 同一事务内现任管理员降级为 customer 并强制下线，再提升目标用户并强制启用。
func (s *UserService) MakeAdmin(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, ErrAlreadyAdmin
	}

	if err := s.userRepo.PromoteToAdmin(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	zap.L().Info("admin changed", zap.Int64("new_admin_id", id))
	return toUserInfo(updated), nil
}

// DeleteUser 删除用户（管理员）
// 管理员账号不允许通过该入口删除；删除时顺带吊销其全部令牌
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return ErrAdminProtected
	}

	if _, err := s.tokenRepo.DeleteAllByUser(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ==================== 内部 ====================

// toUserInfo 模型转视图
func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Gender:      u.Gender,
		DateOfBirth: u.DateOfBirth,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrNewPasswordRequired    = errors.New("new password is required")
	ErrAdminProtected         = errors.New("admin accounts cannot be modified through this operation")
	ErrAlreadyAdmin           = errors.New("this user is already an admin")
)
