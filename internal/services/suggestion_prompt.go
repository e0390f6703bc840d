package services

import (
	"fmt"
	"strings"

	"foodybuddy/internal/models/db_models"
)

const expansionSystemPrompt = `You are a culinary assistant. Given a short food related request, list concrete dish names that match it.
Return ONLY a JSON object of the form {"foods": ["dish name", ...]} with at most 10 distinct dishes.
No markdown, no comments, no extra keys.`

const rankingSystemPrompt = `You are a food recommendation system and nutrition expert. Return ONLY valid JSON (no prose, no markdown) matching:
{
  "suggestions": [
    {
      "dish_name": string,
      "description": string,            // short, at most 200 characters
      "dish_type": string,
      "serving_size": string,
      "cooking_time": integer,          // minutes
      "ingredients": [string],
      "cooking_method": string,
      "dish_tags": [string],
      "calories": integer|null,
      "fat": integer|null,
      "fiber": integer|null,
      "sugar": integer|null,
      "protein": integer|null,
      "image_link": string|null,
      "nutrient_content": string|null,
      "similarity_score": number,       // 0.0 - 1.0
      "text_similarity": number,        // 0.0 - 1.0
      "combined_score": number,         // 0.0 - 1.0
      "suggestion_source": string,      // e.g. "ai_semantic_match"
      "ai_suggestion": string,          // why this dish fits the user
      "final_ranking_score": number     // 0.0 - 1.0
    }
  ]
}

Rules:
- The root object has exactly one key, "suggestions".
- Sort suggestions by relevance, best first.
- Only use dishes from the provided list; never invent dishes.
- Respect the user's preferences and the weather temperature; leave out dishes that conflict with them.
- Strings must not be empty unless null is allowed.`

func buildExpansionPrompt(query string) string {
	return fmt.Sprintf("Request: %s", query)
}

func buildRankingPrompt(query string, temperature float64, preferences string, dishes []db_models.DishMatch) string {
	if strings.TrimSpace(preferences) == "" {
		preferences = "- No stored preferences"
	}
	return fmt.Sprintf(`Suggest dishes from the list below that match this request for a weather temperature of %g°C: %s

User preferences:
%s

Dishes:
%s

Return JSON only.`, temperature, query, preferences, formatDishList(dishes))
}

func formatDishList(dishes []db_models.DishMatch) string {
	var b strings.Builder
	for i, d := range dishes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "ID: %s\n", d.DishID)
		fmt.Fprintf(&b, "Name: %s\n", orDefault(d.DishName, "Unknown"))
		fmt.Fprintf(&b, "Description: %s\n", orDefault(d.Description, "No description"))
		fmt.Fprintf(&b, "Type: %s\n", orDefault(d.DishType, "Unknown"))
		fmt.Fprintf(&b, "Serving size: %s\n", orDefault(d.ServingSize, "Unknown"))
		fmt.Fprintf(&b, "Cooking time: %s\n", intOrUnknown(&d.CookingTime, " minutes"))
		fmt.Fprintf(&b, "Cooking method: %s\n", orDefault(d.CookingMethod, "Unknown"))
		fmt.Fprintf(&b, "Category: %s\n", orDefault(d.Category, "Uncategorized"))
		fmt.Fprintf(&b, "Ingredients: %s\n", orDefault(strings.Join(d.Ingredients, ", "), "Unknown"))
		fmt.Fprintf(&b, "Tags: %s\n", orDefault(strings.Join(d.DishTags, ", "), "None"))
		fmt.Fprintf(&b, "Calories: %s\n", intOrUnknown(d.Calories, ""))
		fmt.Fprintf(&b, "Fat: %s\n", intOrUnknown(d.Fat, " g"))
		fmt.Fprintf(&b, "Fiber: %s\n", intOrUnknown(d.Fiber, " g"))
		fmt.Fprintf(&b, "Sugar: %s\n", intOrUnknown(d.Sugar, " g"))
		fmt.Fprintf(&b, "Protein: %s\n", intOrUnknown(d.Protein, " g"))
		fmt.Fprintf(&b, "Image: %s\n", strOrDefault(d.ImageLink, "None"))
		fmt.Fprintf(&b, "Nutrients: %s\n", strOrDefault(d.NutrientContent, "Unknown"))
		fmt.Fprintf(&b, "Vector similarity: %.3f\n", d.Similarity)
	}
	return b.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func strOrDefault(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return orDefault(*s, fallback)
}

func intOrUnknown(n *int, unit string) string {
	if n == nil || *n == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d%s", *n, unit)
}
