// Package onboarding holds the food preference questionnaire and the rules
// a submission must satisfy before it is stored.
package onboarding

import "sort"

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	TextInput      QuestionType = "text_input"
	Scale          QuestionType = "scale"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Question struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        QuestionType `json:"type"`
	Options     []Option     `json:"options,omitempty"`
	Required    bool         `json:"required"`
	Order       int          `json:"order"`
}

func opt(id, label string) Option {
	return Option{ID: id, Label: label, Value: id}
}

var catalog = []Question{
	{
		ID:          "cooking_skill",
		Title:       "How would you rate your cooking skills?",
		Description: "We will suggest dishes that match your cooking ability",
		Type:        SingleChoice,
		Options: []Option{
			opt("beginner", "Beginner"),
			opt("intermediate", "Intermediate"),
			opt("advanced", "Advanced"),
			opt("expert", "Expert"),
		},
		Required: true,
		Order:    1,
	},
	{
		ID:          "cooking_time",
		Title:       "How much time do you usually have for cooking?",
		Description: "We will prioritize dishes that fit your schedule",
		Type:        SingleChoice,
		Options: []Option{
			opt("under_15", "Under 15 minutes"),
			opt("15_30", "15-30 minutes"),
			opt("30_60", "30-60 minutes"),
			opt("over_60", "Over 1 hour"),
		},
		Required: true,
		Order:    2,
	},
	{
		ID:          "health_conditions",
		Title:       "Do you have any health conditions that restrict your diet?",
		Description: "Helps us suggest dishes that are safe for your health",
		Type:        MultipleChoice,
		Options: []Option{
			opt("diabetes", "Diabetes"),
			opt("heart_disease", "Heart disease / Blood pressure"),
			opt("gout", "Gout"),
			opt("acid_reflux", "Acid reflux"),
			opt("fatty_liver", "Fatty liver"),
			opt("no_conditions", "None"),
		},
		Required: true,
		Order:    3,
	},
	{
		ID:          "allergies",
		Title:       "Are you allergic to any ingredients?",
		Description: "Helps us avoid suggesting dishes that may cause allergies",
		Type:        MultipleChoice,
		Options: []Option{
			opt("seafood", "Seafood (shrimp, crab, squid...)"),
			opt("eggs", "Eggs"),
			opt("dairy", "Dairy / Lactose"),
			opt("soy", "Soy"),
			opt("olive_oil", "Olive oil"),
			opt("no_allergies", "None"),
		},
		Required: true,
		Order:    4,
	},
	{
		ID:          "diet_type",
		Title:       "Are you following a specific diet?",
		Description: "We will suggest dishes that fit your diet",
		Type:        MultipleChoice,
		Options: []Option{
			opt("keto", "Keto"),
			opt("eat_clean", "Eat Clean"),
			opt("vegetarian", "Vegetarian / Vegan"),
			opt("low_carb", "Low-carb"),
			opt("intermittent_fasting", "Intermittent fasting"),
			opt("no_diet", "None"),
		},
		Required: true,
		Order:    5,
	},
	{
		ID:          "food_restrictions",
		Title:       "Which of these can you NOT eat?",
		Description: "Helps us filter out dishes that do not suit your taste",
		Type:        MultipleChoice,
		Options: []Option{
			opt("spicy", "Spicy"),
			opt("salty", "Salty"),
			opt("sweet", "Sweet"),
			opt("sour", "Sour"),
			opt("fried", "Fried food"),
			opt("raw", "Raw food (salads, sashimi, raw vegetables)"),
			opt("no_restrictions", "No restrictions"),
		},
		Required: true,
		Order:    6,
	},
	{
		ID:          "health_goal",
		Title:       "What is your main goal?",
		Description: "We will suggest dishes that support your goal",
		Type:        SingleChoice,
		Options: []Option{
			opt("lose_weight", "Lose weight"),
			opt("gain_weight", "Gain weight"),
			opt("maintain_weight", "Maintain weight"),
			opt("healthy_eating", "Eat healthier"),
			opt("disease_control", "Manage a health condition"),
		},
		Required: true,
		Order:    7,
	},
	{
		ID:          "meals_per_day",
		Title:       "How many meals do you usually eat per day?",
		Description: "Helps us balance nutrition across your meals",
		Type:        SingleChoice,
		Options: []Option{
			opt("one_meal", "1 meal"),
			opt("two_meals", "2 meals"),
			opt("three_meals", "3 meals"),
			opt("four_plus_meals", "4 or more meals"),
		},
		Required: true,
		Order:    8,
	},
	{
		ID:          "exercise_level",
		Title:       "How physically active are you?",
		Description: "Helps us estimate a suitable calorie intake",
		Type:        SingleChoice,
		Options: []Option{
			opt("sedentary", "Sedentary (mostly sitting)"),
			opt("light", "Light (walking, housework)"),
			opt("moderate", "Moderate (about 30 minutes of exercise a day)"),
			opt("intense", "Intense (running, gym, high intensity sports)"),
		},
		Required: true,
		Order:    9,
	},
	{
		ID:          "food_principles",
		Title:       "Which eating principles do you want to follow?",
		Description: "Choose the principles that matter to you",
		Type:        MultipleChoice,
		Options: []Option{
			opt("organic", "Prefer organic / minimally processed food"),
			opt("no_refined", "Avoid refined sugar and flour"),
			opt("vietnamese_priority", "Prefer Vietnamese dishes"),
			opt("asian_cuisine", "Prefer Asian cuisine"),
			opt("western_cuisine", "Prefer Western cuisine"),
			opt("religious", "Religious rules (Buddhist vegetarian, Halal...)"),
		},
		Required: true,
		Order:    10,
	},
	{
		ID:          "preferred_dishes",
		Title:       "Which kinds of dishes do you like?",
		Description: "Choose the dish styles you enjoy",
		Type:        MultipleChoice,
		Options: []Option{
			opt("soup_dishes", "Soups and noodle soups (pho, bun, canh)"),
			opt("dry_dishes", "Dry dishes (rice, stir-fried, fried)"),
			opt("mixed_dishes", "Mixed dishes (salad, goi)"),
			opt("grilled_dishes", "Grilled / steamed / boiled"),
		},
		Required: true,
		Order:    11,
	},
	{
		ID:          "cooking_habit",
		Title:       "Do you usually cook?",
		Description: "Helps us suggest dishes that fit your habits",
		Type:        SingleChoice,
		Options: []Option{
			opt("home_cooking", "Yes, I cook at home"),
			opt("buy_food", "No, I usually buy food"),
		},
		Required: true,
		Order:    12,
	},
	{
		ID:          "favorite_foods",
		Title:       "What are your FAVORITE dishes? (up to 3)",
		Description: "For example: beef pho, bun cha, banh mi...",
		Type:        TextInput,
		Required:    false,
		Order:       13,
	},
	{
		ID:          "disliked_foods",
		Title:       "Which dishes do you DISLIKE or want to exclude?",
		Description: "Enter dishes you do not want to be suggested",
		Type:        TextInput,
		Required:    false,
		Order:       14,
	},
	{
		ID:          "additional_notes",
		Title:       "Anything else we should keep in mind?",
		Description: "For example: no red meat, lots of vegetables...",
		Type:        TextInput,
		Required:    false,
		Order:       15,
	},
}

// Catalog is a read-only view over a fixed, ordered question list.
type Catalog struct {
	questions []Question
	byID      map[string]int
}

// NewCatalog copies qs and sorts the copy by Order.
func NewCatalog(qs []Question) *Catalog {
	cp := cloneQuestions(qs)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Order < cp[j].Order })

	byID := make(map[string]int, len(cp))
	for i, q := range cp {
		byID[q.ID] = i
	}
	return &Catalog{questions: cp, byID: byID}
}

var defaultCatalog = NewCatalog(catalog)

// DefaultCatalog is the food preference questionnaire.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Questions returns a copy of the questions sorted by order; callers may
// modify it freely.
func (c *Catalog) Questions() []Question {
	return cloneQuestions(c.questions)
}

// Len is the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Lookup returns a copy of the question with the given id.
func (c *Catalog) Lookup(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	q := c.questions[i]
	q.Options = append([]Option(nil), q.Options...)
	return q, true
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q
		if q.Options != nil {
			out[i].Options = append([]Option(nil), q.Options...)
		}
	}
	return out
}
