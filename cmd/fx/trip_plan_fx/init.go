package trip_plan_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"voyago/internal/repositories"
	"voyago/internal/services"
)

var Module = fx.Provide(provideTripPlanRepo, provideTripPlanService)

func provideTripPlanRepo(db *gorm.DB) repositories.TripPlanRepository {
	return repositories.NewTripPlanRepository(db)
}

func provideTripPlanService(repo repositories.TripPlanRepository, logger *zap.Logger) services.TripPlanServiceInterface {
	return services.NewTripPlanService(repo, logger.Named("trip_plan"))
}
