package prompt_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"voyago/internal/config"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

var Module = fx.Provide(
	ProvideContentGenerator,
	ProvideImageGenerator,
	ProvideItineraryService,
	ProvideContentService)

func aiConfig(cfg *config.Config) utils.AIConfig {
	return utils.AIConfig{
		Provider:     cfg.GenAIProvider,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		ImageModel:   cfg.OpenAIImageModel,
	}
}

// ProvideContentGenerator creates the text/JSON client for the configured provider.
// Without an API key every call fails and callers use their fallbacks.
func ProvideContentGenerator(cfg *config.Config, lc fx.Lifecycle, logger *zap.Logger) (utils.ContentGenerator, error) {
	gen, err := utils.NewContentGenerator(context.Background(), aiConfig(cfg))
	if err != nil {
		return nil, err
	}

	if _, ok := gen.(utils.UnavailableGenerator); ok {
		logger.Warn("no generative provider key configured, itineraries use templates", zap.String("provider", cfg.GenAIProvider))
	} else {
		logger.Info("generative provider ready", zap.String("provider", cfg.GenAIProvider))
	}

	if closer, ok := gen.(interface{ Close() error }); ok {
		lc.Append(fx.StopHook(closer.Close))
	}
	return gen, nil
}

func ProvideImageGenerator(cfg *config.Config) utils.ImageGenerator {
	return utils.NewImageGenerator(aiConfig(cfg))
}

func ProvideItineraryService(cfg *config.Config, gen utils.ContentGenerator, logger *zap.Logger) services.ItineraryServiceInterface {
	return services.NewItineraryService(
		services.NewItineraryGenerator(gen),
		services.NewSimulatedProgress(cfg.ProgressStepInterval),
		cfg.PerCityConcurrency,
		logger.Named("itinerary"),
	)
}

func ProvideContentService(gen utils.ContentGenerator, logger *zap.Logger) services.ContentServiceInterface {
	return services.NewContentService(gen, logger.Named("content"))
}
