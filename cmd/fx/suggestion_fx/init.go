package suggestion_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodybuddy/internal/config"
	"foodybuddy/internal/onboarding"
	"foodybuddy/internal/repositories"
	"foodybuddy/internal/services"
	mem "foodybuddy/pkg/memcache"
	"foodybuddy/pkg/utils"
)

var Module = fx.Provide(
	provideDishRepo, provideSuggestionService, provideDishEmbeddingService)

func provideDishRepo(db *gorm.DB) repositories.DishEmbeddingRepository {
	return repositories.NewDishEmbeddingRepository(db)
}

func provideSuggestionService(
	llm utils.LLMClientInterface,
	dishRepo repositories.DishEmbeddingRepository,
	onboardingService services.OnboardingServiceInterface,
	catalog *onboarding.Catalog,
	cache mem.Store,
	cfg *config.Config,
	log *zap.Logger,
) services.SuggestionServiceInterface {
	return services.NewSuggestionService(llm, dishRepo, onboardingService, catalog, cache, services.SuggestionConfig{
		DefaultLimit:       cfg.Suggestion.DefaultLimit,
		DefaultTemperature: cfg.Suggestion.DefaultTemperature,
		MaxExpandedDishes:  cfg.Suggestion.MaxExpandedDishes,
		ExpansionCacheTTL:  cfg.Suggestion.ExpansionCacheTTL,
	}, log)
}

func provideDishEmbeddingService(dishRepo repositories.DishEmbeddingRepository, llm utils.LLMClientInterface, log *zap.Logger) services.DishEmbeddingServiceInterface {
	return services.NewDishEmbeddingService(dishRepo, llm, log)
}
