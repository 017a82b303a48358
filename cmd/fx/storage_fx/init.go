package storage_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"voyago/internal/config"
	"voyago/internal/services"
)

var Module = fx.Provide(provideObjectStore)

func provideObjectStore(cfg *config.Config, logger *zap.Logger) (services.ObjectStore, error) {
	return services.NewObjectStore(context.Background(), services.GCSConfig{
		Bucket:          cfg.GCSBucket,
		CredentialsFile: cfg.GCSCredentialsFile,
	}, logger.Named("storage"))
}
