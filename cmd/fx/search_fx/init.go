package search_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"voyago/internal/config"
	"voyago/internal/services"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

var Module = fx.Provide(provideTravelProvider, provideAirportResolver, provideSearchService)

// provideTravelProvider returns nil when no live source is configured; search then serves sample data.
func provideTravelProvider(cfg *config.Config, logger *zap.Logger) services.TravelProvider {
	switch cfg.FlightProvider {
	case "amadeus":
		if cfg.AmadeusClientID == "" || cfg.AmadeusClientSecret == "" {
			logger.Warn("AMADEUS_CLIENT_ID/AMADEUS_CLIENT_SECRET not set, search runs on sample data")
			return nil
		}
		return services.NewAmadeusProvider(services.AmadeusConfig{
			ClientID:     cfg.AmadeusClientID,
			ClientSecret: cfg.AmadeusClientSecret,
			Env:          cfg.AmadeusEnv,
		}, logger.Named("amadeus"))
	case "scraper":
		if cfg.ScraperBaseURL == "" {
			logger.Warn("SCRAPER_BASE_URL not set, search runs on sample data")
			return nil
		}
		return services.NewScraperProvider(cfg.ScraperBaseURL, cfg.ScraperAPIKey)
	default:
		logger.Info("no flight provider selected, search runs on sample data", zap.String("provider", cfg.FlightProvider))
		return nil
	}
}

func provideAirportResolver(cfg *config.Config, gen utils.ContentGenerator, cache memcache.Store, logger *zap.Logger) services.AirportCodeResolver {
	return services.NewAirportCodeResolver(gen, cache, cfg.AirportCodeCacheTTL, logger.Named("airports"))
}

func provideSearchService(provider services.TravelProvider, resolver services.AirportCodeResolver, logger *zap.Logger) services.SearchServiceInterface {
	return services.NewSearchService(provider, resolver, logger.Named("search"))
}
