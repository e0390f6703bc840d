package response_models

type FoodSuggestion struct {
	DishName          string   `json:"dish_name"`
	Description       string   `json:"description"`
	DishType          string   `json:"dish_type"`
	ServingSize       string   `json:"serving_size"`
	CookingTime       int      `json:"cooking_time"`
	Ingredients       []string `json:"ingredients"`
	CookingMethod     string   `json:"cooking_method"`
	DishTags          []string `json:"dish_tags"`
	Calories          *int     `json:"calories"`
	Fat               *int     `json:"fat"`
	Fiber             *int     `json:"fiber"`
	Sugar             *int     `json:"sugar"`
	Protein           *int     `json:"protein"`
	ImageLink         *string  `json:"image_link"`
	NutrientContent   *string  `json:"nutrient_content"`
	SimilarityScore   float64  `json:"similarity_score"`
	TextSimilarity    float64  `json:"text_similarity"`
	CombinedScore     float64  `json:"combined_score"`
	FinalRankingScore float64  `json:"final_ranking_score"`
	SuggestionSource  string   `json:"suggestion_source"`
	AISuggestion      string   `json:"ai_suggestion"`
}

type SuggestionsResponse struct {
	Suggestions []FoodSuggestion `json:"suggestions"`
	Total       int              `json:"total"`
}
