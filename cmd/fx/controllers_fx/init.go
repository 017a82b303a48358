package controllers_fx

import (
	"go.uber.org/fx"
	"voyago/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewSearchController),
	fx.Provide(controllers.NewBookingController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewTripPlanController),
	fx.Provide(controllers.NewWizardController),
	fx.Provide(controllers.NewDashboardController))
