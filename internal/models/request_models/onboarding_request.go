package request_models

import "foodybuddy/internal/onboarding"

type OnboardingAnswersRequest struct {
	Answers []OnboardingAnswer `json:"answers" binding:"required,dive"`
}

type OnboardingAnswer struct {
	QuestionID string                 `json:"question_id" binding:"required"`
	Answer     onboarding.AnswerValue `json:"answer"`
}

func (r OnboardingAnswersRequest) ToAnswers() []onboarding.Answer {
	out := make([]onboarding.Answer, len(r.Answers))
	for i, a := range r.Answers {
		out[i] = onboarding.Answer{QuestionID: a.QuestionID, Answer: a.Answer}
	}
	return out
}
