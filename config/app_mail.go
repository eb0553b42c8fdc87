package config

import (
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/internal/notify"
	"github.com/prometheus/client_golang/prometheus"
)

// NewNotifier builds the staff notifier. A missing RESEND_API_KEY is not an error: the
// notifier then reports every attempt as not configured.
func NewNotifier(logger *log.Logger, reg prometheus.Registerer) (*notify.Notifier, error) {
	mailCfg, err := notify.LoadMailConfig()
	if err != nil {
		return nil, err
	}

	sender, err := mailCfg.NewSender(notify.NewNoopSender(logger))
	if err != nil {
		return nil, err
	}

	switch {
	case mailCfg.DryRun:
		logger.Info("Email notifications in dry-run mode (NOTIFY_DRY_RUN=true)")
	case sender == nil:
		logger.Warn("RESEND_API_KEY not set; contact and team application emails are disabled")
	default:
		logger.Info("Email notifications enabled", "provider", "resend", "to", mailCfg.To)
	}

	return notify.NewNotifier(mailCfg, sender, logger, reg), nil
}
