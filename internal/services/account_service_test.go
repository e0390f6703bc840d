package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"foodybuddy/internal/models/db_models"
	"foodybuddy/internal/models/request_models"
	"foodybuddy/pkg/utils"
)

const testBcryptCost = 4

func newAccountService(t *testing.T, repo *MockUserRepository) (AccountServiceInterface, *utils.TokenManager) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	return NewAccountService(repo, tokens, testBcryptCost, zaptest.NewLogger(t)), tokens
}

func existingUser(t *testing.T, password string, active bool) *db_models.User {
	hash, err := utils.HashPassword(password, testBcryptCost)
	require.NoError(t, err)
	return &db_models.User{
		BaseModel:      db_models.BaseModel{ID: uuid.New()},
		Email:          "an@example.com",
		FullName:       "An Nguyen",
		HashedPassword: hash,
		IsActive:       active,
	}
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()
	valid := request_models.RegisterRequest{Email: "an@example.com", Password: "Str0ng!Pass", FullName: "An Nguyen"}

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "an@example.com").Return(nil, nil)
		repo.On("Insert", ctx, mock.MatchedBy(func(u *db_models.User) bool {
			return u.Email == "an@example.com" && u.IsActive && u.HashedPassword != "Str0ng!Pass" &&
				utils.ComparePasswords(u.HashedPassword, "Str0ng!Pass") == nil
		})).Return(nil)

		svc, _ := newAccountService(t, repo)
		user, err := svc.Register(ctx, valid)

		require.NoError(t, err)
		assert.Equal(t, "an@example.com", user.Email)
		assert.Equal(t, "An Nguyen", user.FullName)
		assert.True(t, user.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "an@example.com").Return(existingUser(t, "x", true), nil)

		svc, _ := newAccountService(t, repo)
		_, err := svc.Register(ctx, valid)

		assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("weak password reports first unmet rule", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "an@example.com").Return(nil, nil)

		svc, _ := newAccountService(t, repo)
		req := valid
		req.Password = "weakpass"
		_, err := svc.Register(ctx, req)

		var policyErr *utils.PasswordPolicyError
		require.ErrorAs(t, err, &policyErr)
		assert.Equal(t, "Password is weak: Password must include at least one uppercase letter", err.Error())
	})

	t.Run("duplicate key on insert", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "an@example.com").Return(nil, nil)
		repo.On("Insert", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)

		svc, _ := newAccountService(t, repo)
		_, err := svc.Register(ctx, valid)
		assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	})

	t.Run("database failure", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByEmail", ctx, "an@example.com").Return(nil, errors.New("conn refused"))

		svc, _ := newAccountService(t, repo)
		_, err := svc.Register(ctx, valid)
		assert.ErrorIs(t, err, utils.ErrDatabaseError)
	})
}

func TestAccountService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		user     *db_models.User
		password string
		wantErr  error
	}{
		{"unknown email", nil, "Str0ng!Pass", utils.ErrInvalidCredentials},
		{"wrong password", existingUser(t, "Str0ng!Pass", true), "nope", utils.ErrInvalidCredentials},
		{"disabled account", existingUser(t, "Str0ng!Pass", false), "Str0ng!Pass", utils.ErrAccountDisabled},
		{"disabled account with wrong password", existingUser(t, "Str0ng!Pass", false), "nope", utils.ErrInvalidCredentials},
		{"success", existingUser(t, "Str0ng!Pass", true), "Str0ng!Pass", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			if tt.user == nil {
				repo.On("FindByEmail", ctx, "an@example.com").Return(nil, nil)
			} else {
				repo.On("FindByEmail", ctx, "an@example.com").Return(tt.user, nil)
			}

			svc, tokens := newAccountService(t, repo)
			resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "an@example.com", Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "bearer", resp.TokenType)

			claims, err := tokens.ValidateToken(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID.String(), claims.UserID)
			assert.Equal(t, "access", claims.Type)
		})
	}
}

func TestAccountService_GetProfile(t *testing.T) {
	ctx := context.Background()
	user := existingUser(t, "Str0ng!Pass", true)

	repo := new(MockUserRepository)
	repo.On("FindByID", ctx, user.ID.String()).Return(user, nil)
	repo.On("FindByID", ctx, "ghost").Return(nil, nil)

	svc, _ := newAccountService(t, repo)

	profile, err := svc.GetProfile(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), profile.ID)

	_, err = svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}
