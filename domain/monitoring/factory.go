package monitoring

import (
	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	store  kvstore.Store
	cache  Pinger
	mail   MailStatus
	logger *log.Logger
}

// NewMonitoringControllerFactory accepts a nil cache or mail status when those are not set up.
func NewMonitoringControllerFactory(store kvstore.Store, cache Pinger, mail MailStatus, logger *log.Logger) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		store:  store,
		cache:  cache,
		mail:   mail,
		logger: logger,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.store, f.store.Driver(), f.cache, f.mail, f.logger)
}
