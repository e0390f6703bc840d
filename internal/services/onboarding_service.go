package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"foodybuddy/internal/models/db_models"
	"foodybuddy/internal/models/response_models"
	"foodybuddy/internal/onboarding"
	"foodybuddy/internal/repositories"
	"foodybuddy/pkg/utils"
)

const (
	msgPreferencesSaved     = "Preferences saved successfully"
	msgOnboardingCompleted  = "Onboarding completed"
	msgOnboardingIncomplete = "Onboarding not completed"
)

type OnboardingServiceInterface interface {
	GetQuestions() response_models.OnboardingQuestionsResponse
	SubmitAnswers(ctx context.Context, userID string, answers []onboarding.Answer) (*response_models.OnboardingAnswersResponse, error)
	GetStatus(ctx context.Context, userID string) (*response_models.OnboardingStatusResponse, error)
	GetPreferences(ctx context.Context, userID string) (*response_models.UserPreferencesResponse, error)
	// LoadAnswers returns the stored answer map, empty when the user has none.
	LoadAnswers(ctx context.Context, userID string) (map[string]onboarding.AnswerValue, error)
}

type OnboardingService struct {
	catalog   *onboarding.Catalog
	prefsRepo repositories.UserPreferencesRepository
	now       func() time.Time
	log       *zap.Logger
}

func NewOnboardingService(catalog *onboarding.Catalog, prefsRepo repositories.UserPreferencesRepository, log *zap.Logger) OnboardingServiceInterface {
	return &OnboardingService{
		catalog:   catalog,
		prefsRepo: prefsRepo,
		now:       time.Now,
		log:       log.Named("onboarding"),
	}
}

func (s *OnboardingService) GetQuestions() response_models.OnboardingQuestionsResponse {
	return response_models.OnboardingQuestionsResponse{
		Questions: s.catalog.Questions(),
		Total:     s.catalog.Len(),
	}
}

// SubmitAnswers reports validation failures in the response body, not as
// errors; only storage failures are returned as errors.
func (s *OnboardingService) SubmitAnswers(ctx context.Context, userID string, answers []onboarding.Answer) (*response_models.OnboardingAnswersResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", utils.ErrUnauthorized)
	}

	res := onboarding.Validate(s.catalog, answers)
	switch res.Outcome {
	case onboarding.OutcomeMissingRequired:
		return &response_models.OnboardingAnswersResponse{
			Success: false,
			Message: "Please answer the required questions: " + strings.Join(res.IDs, ", "),
		}, nil
	case onboarding.OutcomeUnknownQuestion:
		return &response_models.OnboardingAnswersResponse{
			Success: false,
			Message: "Unknown questions: " + strings.Join(res.IDs, ", "),
		}, nil
	}

	payload, err := json.Marshal(onboarding.AnswerMap(answers))
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	completedAt := s.now().UTC()
	pref := &db_models.UserPreferences{
		UserID:      uid,
		Answers:     datatypes.JSON(payload),
		Version:     db_models.PreferencesVersion,
		IsCompleted: true,
		CompletedAt: &completedAt,
	}
	if err := s.prefsRepo.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("%w: save preferences: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("preferences saved", zap.String("user_id", userID), zap.Int("answers", len(answers)))
	return &response_models.OnboardingAnswersResponse{
		Success: true,
		Message: msgPreferencesSaved,
	}, nil
}

func (s *OnboardingService) GetStatus(ctx context.Context, userID string) (*response_models.OnboardingStatusResponse, error) {
	pref, err := s.prefsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load preferences: %v", utils.ErrDatabaseError, err)
	}
	if pref == nil || !pref.IsCompleted {
		return &response_models.OnboardingStatusResponse{Completed: false, Message: msgOnboardingIncomplete}, nil
	}

	resp := &response_models.OnboardingStatusResponse{Completed: true, Message: msgOnboardingCompleted}
	if pref.CompletedAt != nil {
		resp.CompletedAt = utils.FormatRFC3339VN(*pref.CompletedAt)
	}
	return resp, nil
}

func (s *OnboardingService) GetPreferences(ctx context.Context, userID string) (*response_models.UserPreferencesResponse, error) {
	answers, err := s.LoadAnswers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &response_models.UserPreferencesResponse{
		Preferences:    onboarding.RawAnswers(answers),
		HasPreferences: len(answers) > 0,
	}, nil
}

func (s *OnboardingService) LoadAnswers(ctx context.Context, userID string) (map[string]onboarding.AnswerValue, error) {
	pref, err := s.prefsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load preferences: %v", utils.ErrDatabaseError, err)
	}
	answers := map[string]onboarding.AnswerValue{}
	if pref == nil || len(pref.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(pref.Answers, &answers); err != nil {
		return nil, fmt.Errorf("decode stored preferences: %w", err)
	}
	return answers, nil
}
