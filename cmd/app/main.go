package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"foodybuddy/cmd/fx/account_fx"
	"foodybuddy/cmd/fx/ai_fx"
	"foodybuddy/cmd/fx/config_fx"
	"foodybuddy/cmd/fx/controllers_fx"
	"foodybuddy/cmd/fx/db_fx"
	"foodybuddy/cmd/fx/memcache_fx"
	"foodybuddy/cmd/fx/onboarding_fx"
	"foodybuddy/cmd/fx/suggestion_fx"
	"foodybuddy/internal/api/controllers"
	"foodybuddy/internal/config"
	"foodybuddy/pkg/middleware"
	"foodybuddy/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		ai_fx.Module,
		account_fx.Module,
		onboarding_fx.Module,
		suggestion_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type routerParams struct {
	fx.In

	Config               *config.Config
	Log                  *zap.Logger
	Tokens               *utils.TokenManager
	AccountController    *controllers.AccountController
	OnboardingController *controllers.OnboardingController
	SuggestionController *controllers.SuggestionController
	HealthController     *controllers.HealthController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if p.Config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	auth := middleware.JWTAuthMiddleware(p.Tokens)
	loginLimiter := middleware.NewIPRateLimiter(p.Config.RateLimit.LoginPerSecond, p.Config.RateLimit.LoginBurst)

	r.GET("/health", p.HealthController.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	authGroup.POST("/register", p.AccountController.Register)
	authGroup.POST("/login", middleware.RateLimitMiddleware(loginLimiter), p.AccountController.Login)
	authGroup.GET("/me", auth, p.AccountController.Me)

	onboardingGroup := r.Group("/onboarding")
	onboardingGroup.GET("/questions", p.OnboardingController.GetQuestions)
	onboardingGroup.POST("/answers", auth, p.OnboardingController.SubmitAnswers)
	onboardingGroup.GET("/status", auth, p.OnboardingController.GetStatus)
	onboardingGroup.GET("/preferences", auth, p.OnboardingController.GetPreferences)

	suggestionsGroup := r.Group("/suggestions", auth)
	suggestionsGroup.POST("", p.SuggestionController.Suggest)
}
