package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"foodybuddy/internal/models/response_models"
	"foodybuddy/pkg/utils"
)

const expansionSchemaJSON = `{
  "type": "object",
  "required": ["foods"],
  "properties": {
    "foods": {"type": "array", "items": {"type": "string"}}
  }
}`

const rankingSchemaJSON = `{
  "type": "object",
  "required": ["suggestions"],
  "properties": {
    "suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": [
          "dish_name", "description", "dish_type", "serving_size", "cooking_time",
          "ingredients", "cooking_method", "dish_tags",
          "similarity_score", "text_similarity", "combined_score", "final_ranking_score",
          "suggestion_source", "ai_suggestion"
        ],
        "properties": {
          "dish_name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "dish_type": {"type": "string"},
          "serving_size": {"type": "string"},
          "cooking_time": {"type": "number"},
          "ingredients": {"type": ["array", "string"], "items": {"type": "string"}},
          "cooking_method": {"type": "string"},
          "dish_tags": {"type": ["array", "string"], "items": {"type": "string"}},
          "calories": {"type": ["number", "null"]},
          "fat": {"type": ["number", "null"]},
          "fiber": {"type": ["number", "null"]},
          "sugar": {"type": ["number", "null"]},
          "protein": {"type": ["number", "null"]},
          "image_link": {"type": ["string", "null"]},
          "nutrient_content": {"type": ["string", "null"]},
          "similarity_score": {"type": "number"},
          "text_similarity": {"type": "number"},
          "combined_score": {"type": "number"},
          "final_ranking_score": {"type": "number"},
          "suggestion_source": {"type": "string"},
          "ai_suggestion": {"type": "string"}
        }
      }
    }
  }
}`

var (
	expansionSchema = mustSchema(expansionSchemaJSON)
	rankingSchema   = mustSchema(rankingSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in json schema: %v", err))
	}
	return s
}

// validateJSON reports every schema violation of doc as one
// ErrUnexpectedBehaviorOfAI error.
func validateJSON(schema *gojsonschema.Schema, doc string) error {
	res, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: schema violations: %s", utils.ErrUnexpectedBehaviorOfAI, strings.Join(msgs, "; "))
}

// flexList accepts either a JSON array of strings or one comma separated string.
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

type rankedDish struct {
	DishName          string   `json:"dish_name"`
	Description       string   `json:"description"`
	DishType          string   `json:"dish_type"`
	ServingSize       string   `json:"serving_size"`
	CookingTime       float64  `json:"cooking_time"`
	Ingredients       flexList `json:"ingredients"`
	CookingMethod     string   `json:"cooking_method"`
	DishTags          flexList `json:"dish_tags"`
	Calories          *float64 `json:"calories"`
	Fat               *float64 `json:"fat"`
	Fiber             *float64 `json:"fiber"`
	Sugar             *float64 `json:"sugar"`
	Protein           *float64 `json:"protein"`
	ImageLink         *string  `json:"image_link"`
	NutrientContent   *string  `json:"nutrient_content"`
	SimilarityScore   float64  `json:"similarity_score"`
	TextSimilarity    float64  `json:"text_similarity"`
	CombinedScore     float64  `json:"combined_score"`
	FinalRankingScore float64  `json:"final_ranking_score"`
	SuggestionSource  string   `json:"suggestion_source"`
	AISuggestion      string   `json:"ai_suggestion"`
}

type rankingOutput struct {
	Suggestions []rankedDish `json:"suggestions"`
}

func (d rankedDish) toResponse() response_models.FoodSuggestion {
	ingredients := []string(d.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	tags := []string(d.DishTags)
	if tags == nil {
		tags = []string{}
	}
	return response_models.FoodSuggestion{
		DishName:          strings.TrimSpace(d.DishName),
		Description:       d.Description,
		DishType:          d.DishType,
		ServingSize:       d.ServingSize,
		CookingTime:       int(math.Round(d.CookingTime)),
		Ingredients:       ingredients,
		CookingMethod:     d.CookingMethod,
		DishTags:          tags,
		Calories:          roundPtr(d.Calories),
		Fat:               roundPtr(d.Fat),
		Fiber:             roundPtr(d.Fiber),
		Sugar:             roundPtr(d.Sugar),
		Protein:           roundPtr(d.Protein),
		ImageLink:         d.ImageLink,
		NutrientContent:   d.NutrientContent,
		SimilarityScore:   clampScore(d.SimilarityScore),
		TextSimilarity:    clampScore(d.TextSimilarity),
		CombinedScore:     clampScore(d.CombinedScore),
		FinalRankingScore: clampScore(d.FinalRankingScore),
		SuggestionSource:  d.SuggestionSource,
		AISuggestion:      d.AISuggestion,
	}
}

func roundPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

// clampScore pins a model supplied score into [0, 1]; NaN becomes 0.
func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
