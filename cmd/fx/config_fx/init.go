package config_fx

import (
	"go.uber.org/fx"
	"voyago/internal/config"
	"voyago/pkg/utils"
)

var Module = fx.Provide(provideConfig, provideTokenIssuer)

func provideConfig() *config.Config {
	return config.Load()
}

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
}
