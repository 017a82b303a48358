package wizard_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"voyago/internal/config"
	"voyago/internal/repositories"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

var Module = fx.Provide(provideWizardRepo, provideQuotaRepo, provideWizardService)

func provideWizardRepo(db *gorm.DB) repositories.WizardRepository {
	return repositories.NewWizardRepository(db)
}

func provideQuotaRepo(db *gorm.DB) repositories.QuotaRepository {
	return repositories.NewQuotaRepository(db)
}

func provideWizardService(
	cfg *config.Config,
	states repositories.WizardRepository,
	quotas repositories.QuotaRepository,
	itineraries services.ItineraryServiceInterface,
	images utils.ImageGenerator,
	store services.ObjectStore,
	logger *zap.Logger,
) services.WizardServiceInterface {
	return services.NewWizardService(states, quotas, itineraries, images, store, services.WizardLimits{
		ImagesPerHour:     cfg.ImageLimitPerHour,
		ItinerariesPerDay: cfg.ItineraryLimitPerDay,
	}, logger.Named("wizard"))
}
