package onboarding_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodybuddy/internal/onboarding"
	"foodybuddy/internal/repositories"
	"foodybuddy/internal/services"
)

var Module = fx.Provide(
	onboarding.DefaultCatalog, providePreferencesRepo, provideOnboardingService)

func providePreferencesRepo(db *gorm.DB) repositories.UserPreferencesRepository {
	return repositories.NewUserPreferencesRepository(db)
}

func provideOnboardingService(catalog *onboarding.Catalog, prefsRepo repositories.UserPreferencesRepository, log *zap.Logger) services.OnboardingServiceInterface {
	return services.NewOnboardingService(catalog, prefsRepo, log)
}
