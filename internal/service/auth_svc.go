package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loja_backend_v1/internal/api/dto"
	"loja_backend_v1/internal/middleware"
	"loja_backend_v1/internal/model"
	"loja_backend_v1/internal/repository"
)

// ==================== 错误定义 ====================

var (
	// ErrEmailInUse 邮箱已注册
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
)

const bcryptCost = 10

// ==================== 认证服务 ====================

// AuthService 注册/登录/token 校验
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册新用户，返回不含密码的信息
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserResp, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return userToResp(user), nil
}

// Login 校验密码并签发 token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginResp, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResp{Token: token, User: *userToResp(user)}, nil
}

// Verify 校验 token 并返回对应用户
func (s *AuthService) Verify(ctx context.Context, token string) (*dto.UserResp, error) {
	claims, err := middleware.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return userToResp(user), nil
}

func userToResp(user *model.User) *dto.UserResp {
	return &dto.UserResp{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}
}
