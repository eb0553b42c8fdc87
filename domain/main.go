package domain

import (
	"github.com/langpal/langpal-api/config"
	"github.com/langpal/langpal-api/domain/export"
	"github.com/langpal/langpal-api/domain/intake"
	"github.com/langpal/langpal-api/domain/monitoring"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	var cache monitoring.Pinger
	if appConfig.Cache != nil {
		cache = appConfig.Cache
	}

	rs := appConfig.RouterService

	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig.KVStore, cache, appConfig.Notifier, appConfig.Logger).CreateController())
	rs.MountController(intake.NewIntakeServiceFactory(appConfig.KVStore, appConfig.Config.KVStore.WriteTimeout, appConfig.Notifier, appConfig.Logger).CreateController())
	rs.MountController(export.NewExportController(appConfig.KVStore, appConfig.Export, appConfig.Logger))
}
