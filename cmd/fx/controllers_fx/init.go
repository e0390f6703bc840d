package controllers_fx

import (
	"go.uber.org/fx"

	"foodybuddy/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewOnboardingController),
	fx.Provide(controllers.NewSuggestionController),
	fx.Provide(controllers.NewHealthController))
