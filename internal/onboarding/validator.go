package onboarding

import "encoding/json"

// Answer is one submitted (question id, value) pair.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Answer     AnswerValue `json:"answer"`
}

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeMissingRequired
	OutcomeUnknownQuestion
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeMissingRequired:
		return "missing-required"
	case OutcomeUnknownQuestion:
		return "unknown-question"
	default:
		return "unknown"
	}
}

// Result is the verdict on a submission. IDs holds every offending question
// id: missing ones in catalog order, unknown ones in submission order.
type Result struct {
	Outcome Outcome
	IDs     []string
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Validate checks a submission against the catalog. Missing required
// questions are reported before unknown ids; nothing is partially accepted.
func Validate(c *Catalog, answers []Answer) Result {
	submitted := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		submitted[a.QuestionID] = struct{}{}
	}

	var missing []string
	for _, q := range c.questions {
		if !q.Required {
			continue
		}
		if _, ok := submitted[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return Result{Outcome: OutcomeMissingRequired, IDs: missing}
	}

	var unknown []string
	seen := make(map[string]struct{})
	for _, a := range answers {
		if _, ok := c.byID[a.QuestionID]; ok {
			continue
		}
		if _, dup := seen[a.QuestionID]; dup {
			continue
		}
		seen[a.QuestionID] = struct{}{}
		unknown = append(unknown, a.QuestionID)
	}
	if len(unknown) > 0 {
		return Result{Outcome: OutcomeUnknownQuestion, IDs: unknown}
	}

	return Result{Outcome: OutcomeOK}
}

// AnswerMap folds a submission into the stored form. A later answer for the
// same question replaces an earlier one.
func AnswerMap(answers []Answer) map[string]AnswerValue {
	out := make(map[string]AnswerValue, len(answers))
	for _, a := range answers {
		out[a.QuestionID] = a.Answer
	}
	return out
}

// RawAnswers is AnswerMap rendered for JSON responses.
func RawAnswers(m map[string]AnswerValue) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = v.Raw()
	}
	return out
}
