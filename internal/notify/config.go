package notify

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type MailConfig struct {
	ResendAPIKey        string        `envconfig:"RESEND_API_KEY"`
	ResendBaseURL       string        `envconfig:"RESEND_BASE_URL"`
	To                  []string      `envconfig:"NOTIFY_TO" default:"teamlangpal@gmail.com"`
	ContactFrom         string        `envconfig:"CONTACT_FROM" default:"LangPal Contact Form <onboarding@resend.dev>"`
	TeamApplicationFrom string        `envconfig:"TEAM_APPLICATION_FROM" default:"LangPal Team Applications <onboarding@resend.dev>"`
	Timeout             time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
	BreakerFailures     int           `envconfig:"NOTIFY_BREAKER_FAILURES" default:"5"`
	BreakerCooldown     time.Duration `envconfig:"NOTIFY_BREAKER_COOLDOWN" default:"1m"`
	DryRun              bool          `envconfig:"NOTIFY_DRY_RUN" default:"false"`
}

// LoadMailConfig reads MailConfig from the environment.
func LoadMailConfig() (*MailConfig, error) {
	var cfg MailConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load mail config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("NOTIFY_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	if len(cfg.To) == 0 {
		return nil, fmt.Errorf("NOTIFY_TO must name at least one recipient")
	}
	return &cfg, nil
}

// Configured reports whether a provider key is present.
func (c *MailConfig) Configured() bool {
	return c.ResendAPIKey != ""
}

// NewSender picks the sender implied by the config, or nil when nothing can be sent.
func (c *MailConfig) NewSender(noop *NoopSender) (Sender, error) {
	switch {
	case c.DryRun:
		return noop, nil
	case c.Configured():
		sender, err := NewResendSender(c.ResendAPIKey, c.ResendBaseURL)
		if err != nil {
			return nil, err
		}
		return sender, nil
	default:
		return nil, nil
	}
}
