package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodybuddy/internal/models/db_models"
	"foodybuddy/internal/models/request_models"
	"foodybuddy/internal/models/response_models"
	"foodybuddy/internal/repositories"
	"foodybuddy/pkg/metrics"
	"foodybuddy/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.UserResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*response_models.UserResponse, error)
}

type AccountService struct {
	userRepo   repositories.UserRepository
	tokens     *utils.TokenManager
	bcryptCost int
	log        *zap.Logger
}

func NewAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager, bcryptCost int, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log.Named("account"),
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.UserResponse, error) {
	email := strings.TrimSpace(request.Email)

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: find user by email: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	if err := utils.ValidatePasswordStrength(request.Password); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(request.Password, a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Email:          email,
		FullName:       strings.TrimSpace(request.FullName),
		HashedPassword: hashed,
		Gender:         request.Gender,
		Age:            request.Age,
		Height:         request.Height,
		Weight:         request.Weight,
		IsActive:       true,
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: insert user: %v", utils.ErrDatabaseError, err)
	}

	a.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return toUserResponse(user), nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, strings.TrimSpace(request.Email))
	if err != nil {
		return nil, fmt.Errorf("%w: find user by email: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.HashedPassword, request.Password); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, utils.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginAttempts.WithLabelValues("disabled").Inc()
		return nil, utils.ErrAccountDisabled
	}

	token, err := a.tokens.CreateToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &response_models.LoginResponse{
		AccessToken: token,
		TokenType:   utils.TokenTypeBearer,
	}, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *db_models.User) *response_models.UserResponse {
	return &response_models.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Gender:    u.Gender,
		Age:       u.Age,
		Height:    u.Height,
		Weight:    u.Weight,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
