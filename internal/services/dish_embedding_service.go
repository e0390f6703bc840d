package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodybuddy/internal/models/db_models"
	"foodybuddy/internal/repositories"
	"foodybuddy/pkg/utils"
)

// DishSeed is one entry of a knowledge base seed file.
type DishSeed struct {
	ID              string   `json:"id"`
	DishName        string   `json:"dish_name"`
	Description     string   `json:"description"`
	DishType        string   `json:"dish_type"`
	ServingSize     string   `json:"serving_size"`
	CookingTime     int      `json:"cooking_time"`
	CookingMethod   string   `json:"cooking_method"`
	Category        string   `json:"category"`
	Ingredients     []string `json:"ingredients"`
	DishTags        []string `json:"dish_tags"`
	Calories        *int     `json:"calories"`
	Fat             *int     `json:"fat"`
	Fiber           *int     `json:"fiber"`
	Sugar           *int     `json:"sugar"`
	Protein         *int     `json:"protein"`
	ImageLink       *string  `json:"image_link"`
	NutrientContent *string  `json:"nutrient_content"`
}

type DishEmbeddingServiceInterface interface {
	// Seed embeds and upserts every dish, stopping at the first failure.
	// It returns how many dishes were stored.
	Seed(ctx context.Context, dishes []DishSeed) (int, error)
	Count(ctx context.Context) (int64, error)
}

type DishEmbeddingService struct {
	dishRepo repositories.DishEmbeddingRepository
	llm      utils.LLMClientInterface
	log      *zap.Logger
}

func NewDishEmbeddingService(dishRepo repositories.DishEmbeddingRepository, llm utils.LLMClientInterface, log *zap.Logger) DishEmbeddingServiceInterface {
	return &DishEmbeddingService{
		dishRepo: dishRepo,
		llm:      llm,
		log:      log.Named("dish_embedding"),
	}
}

func (s *DishEmbeddingService) Seed(ctx context.Context, dishes []DishSeed) (int, error) {
	stored := 0
	for i, d := range dishes {
		if strings.TrimSpace(d.DishName) == "" {
			return stored, fmt.Errorf("%w: dish #%d has no name", utils.ErrInvalidInput, i)
		}

		vec, err := s.llm.GetEmbedding(ctx, embeddingText(d))
		if err != nil {
			return stored, fmt.Errorf("embed %q: %w", d.DishName, err)
		}

		row := &db_models.DishEmbedding{
			DishID:          dishID(d),
			DishName:        d.DishName,
			Description:     d.Description,
			DishType:        d.DishType,
			ServingSize:     d.ServingSize,
			CookingTime:     d.CookingTime,
			CookingMethod:   d.CookingMethod,
			Category:        d.Category,
			Ingredients:     d.Ingredients,
			DishTags:        d.DishTags,
			Calories:        d.Calories,
			Fat:             d.Fat,
			Fiber:           d.Fiber,
			Sugar:           d.Sugar,
			Protein:         d.Protein,
			ImageLink:       d.ImageLink,
			NutrientContent: d.NutrientContent,
			Embedding:       vec,
		}
		if err := s.dishRepo.Upsert(ctx, row); err != nil {
			return stored, errors.Join(utils.ErrDatabaseError, fmt.Errorf("upsert %q: %w", d.DishName, err))
		}
		stored++
		s.log.Debug("dish stored", zap.String("dish_id", row.DishID), zap.String("dish_name", row.DishName))
	}
	return stored, nil
}

func (s *DishEmbeddingService) Count(ctx context.Context) (int64, error) {
	return s.dishRepo.Count(ctx)
}

// embeddingText is the text a dish is indexed under: name, description and tags.
func embeddingText(d DishSeed) string {
	parts := []string{strings.TrimSpace(d.DishName)}
	if desc := strings.TrimSpace(d.Description); desc != "" {
		parts = append(parts, desc)
	}
	if len(d.DishTags) > 0 {
		parts = append(parts, strings.Join(d.DishTags, ", "))
	}
	return strings.Join(parts, ". ")
}

// dishID keeps a supplied id, otherwise derives a stable one from the name so
// reseeding the same file updates rows in place.
func dishID(d DishSeed) string {
	if id := strings.TrimSpace(d.ID); id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(strings.TrimSpace(d.DishName)))).String()
}
