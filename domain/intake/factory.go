package intake

import (
	"time"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
)

type IntakeServiceFactory interface {
	CreateController() *router.RESTController
}

type DefaultIntakeServiceFactory struct {
	store        kvstore.Store
	writeTimeout time.Duration
	notifier     Notifier
	logger       *log.Logger
}

// NewIntakeServiceFactory falls back to a 10s store write timeout when writeTimeout is not positive.
func NewIntakeServiceFactory(store kvstore.Store, writeTimeout time.Duration, notifier Notifier, logger *log.Logger) IntakeServiceFactory {
	return &DefaultIntakeServiceFactory{
		store:        store,
		writeTimeout: writeTimeout,
		notifier:     notifier,
		logger:       logger,
	}
}

func (f *DefaultIntakeServiceFactory) CreateController() *router.RESTController {
	return NewIntakeController(NewSubmissionRepository(f.store, f.writeTimeout), f.notifier, f.logger)
}
