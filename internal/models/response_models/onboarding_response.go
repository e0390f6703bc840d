package response_models

import (
	"encoding/json"

	"foodybuddy/internal/onboarding"
)

type OnboardingQuestionsResponse struct {
	Questions []onboarding.Question `json:"questions"`
	Total     int                   `json:"total"`
}

type OnboardingAnswersResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type OnboardingStatusResponse struct {
	Completed   bool   `json:"completed"`
	Message     string `json:"message"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type UserPreferencesResponse struct {
	Preferences    map[string]json.RawMessage `json:"preferences"`
	HasPreferences bool                       `json:"has_preferences"`
}
