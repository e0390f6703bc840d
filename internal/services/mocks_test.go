package services

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"

	"foodybuddy/internal/models/db_models"
	"foodybuddy/internal/onboarding"
)

// ==========================
// Repository mocks
// ==========================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user *db_models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.User), args.Error(1)
}

type MockPreferencesRepository struct {
	mock.Mock
}

func (m *MockPreferencesRepository) Upsert(ctx context.Context, pref *db_models.UserPreferences) error {
	return m.Called(ctx, pref).Error(0)
}

func (m *MockPreferencesRepository) FindByUserID(ctx context.Context, userID string) (*db_models.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.UserPreferences), args.Error(1)
}

type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.DishMatch, error) {
	args := m.Called(ctx, vector, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db_models.DishMatch), args.Error(1)
}

func (m *MockDishRepository) Upsert(ctx context.Context, dish *db_models.DishEmbedding) error {
	return m.Called(ctx, dish).Error(0)
}

func (m *MockDishRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ==========================
// LLM and onboarding mocks
// ==========================

type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(pgvector.Vector), args.Error(1)
}

func (m *MockLLM) Close() error {
	return m.Called().Error(0)
}

type MockOnboardingService struct {
	OnboardingServiceInterface
	mock.Mock
}

func (m *MockOnboardingService) LoadAnswers(ctx context.Context, userID string) (map[string]onboarding.AnswerValue, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]onboarding.AnswerValue), args.Error(1)
}
