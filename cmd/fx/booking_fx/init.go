package booking_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"voyago/internal/repositories"
	"voyago/internal/services"
)

var Module = fx.Provide(provideBookingRepo, provideBookingService)

func provideBookingRepo(db *gorm.DB) repositories.BookingRepository {
	return repositories.NewBookingRepository(db)
}

func provideBookingService(repo repositories.BookingRepository, notifier services.BookingNotifier, logger *zap.Logger) services.BookingServiceInterface {
	return services.NewBookingService(repo, notifier, logger.Named("booking"))
}
