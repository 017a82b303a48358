package db_fx

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"voyago/internal/config"
	"voyago/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(cfg *config.Config, lc fx.Lifecycle, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is required")
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL, cfg.IsDevelopment())
	if err != nil {
		return nil, err
	}
	if err := infra.AutoMigrate(db); err != nil {
		infra.ClosePostgresql(db)
		return nil, err
	}
	logger.Info("connected to PostgreSQL")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}
