package controllers_fx

import (
	"go.uber.org/fx"
	"rodneysbrain/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewProjectController),
	fx.Provide(controllers.NewGenerationController),
	fx.Provide(controllers.NewPaymentController))
