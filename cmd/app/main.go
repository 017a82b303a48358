package main

import (
	"go.uber.org/fx"
	"voyago/cmd/fx/account_fx"
	"voyago/cmd/fx/booking_fx"
	"voyago/cmd/fx/config_fx"
	"voyago/cmd/fx/controllers_fx"
	"voyago/cmd/fx/dashboard_fx"
	"voyago/cmd/fx/db_fx"
	"voyago/cmd/fx/logger_fx"
	"voyago/cmd/fx/mail_fx"
	"voyago/cmd/fx/memcache_fx"
	"voyago/cmd/fx/prompt_fx"
	"voyago/cmd/fx/search_fx"
	"voyago/cmd/fx/server_fx"
	"voyago/cmd/fx/storage_fx"
	"voyago/cmd/fx/trip_plan_fx"
	"voyago/cmd/fx/wizard_fx"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		storage_fx.Module,
		prompt_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		search_fx.Module,
		booking_fx.Module,
		trip_plan_fx.Module,
		wizard_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,
		server_fx.Module,
	)

	app.Run()
}
