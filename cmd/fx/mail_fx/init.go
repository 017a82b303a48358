package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"voyago/internal/config"
	"voyago/internal/repositories"
	"voyago/internal/services"
)

var Module = fx.Provide(provideBookingNotifier)

func provideBookingNotifier(cfg *config.Config, accounts repositories.AccountRepository, logger *zap.Logger) services.BookingNotifier {
	smtpCfg := services.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort, // 587 for STARTTLS; use 465 with SMTP_USE_SSL=true
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		FromName:   cfg.SMTPFromName,
		UseSSL:     cfg.SMTPUseSSL,
		RequireTLS: true,

		AppName:    cfg.SMTPFromName,
		AppBaseURL: cfg.FrontendURL,
	}
	if !smtpCfg.Enabled() {
		logger.Info("SMTP not configured, booking confirmations are disabled")
	}

	return services.NewBookingNotifier(smtpCfg, accounts, logger.Named("mail"))
}
