package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodybuddy/internal/config"
	"foodybuddy/internal/repositories"
	"foodybuddy/internal/services"
	"foodybuddy/pkg/utils"
)

var Module = fx.Provide(
	provideTokenManager, provideAccountService, provideUserRepo)

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository, tokens *utils.TokenManager, cfg *config.Config, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, tokens, cfg.Auth.BcryptCost, log)
}
