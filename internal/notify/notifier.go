package notify

import (
	"context"
	"errors"
	"time"

	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/internal/models"
	"github.com/langpal/langpal-api/pkg/circuitbreaker"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome is how a notification attempt ended.
type Outcome string

const (
	OutcomeSent          Outcome = "sent"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeFailed        Outcome = "failed"
	// OutcomeUnreachable means the provider could not be reached at all.
	OutcomeUnreachable Outcome = "unreachable"
)

const (
	kindContact         = "contact"
	kindTeamApplication = "team_application"
)

// Notifier formats and sends staff emails. A nil sender means no provider is configured.
type Notifier struct {
	sender  Sender
	config  *MailConfig
	breaker circuitbreaker.CircuitBreaker
	logger  *log.Logger
	sent    *prometheus.CounterVec
}

// NewNotifier registers its counter on reg when reg is non-nil.
func NewNotifier(config *MailConfig, sender Sender, logger *log.Logger, reg prometheus.Registerer) *Notifier {
	n := &Notifier{
		sender: sender,
		config: config,
		logger: logger,
		sent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "langpal_notifications_total",
				Help: "Staff notification attempts by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
	}

	n.breaker = circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
		FailureThreshold: config.BreakerFailures,
		RecoveryTimeout:  config.BreakerCooldown,
		SuccessThreshold: 1,
		OnStateChange: func(from, to circuitbreaker.CircuitState) {
			logger.Warn("Notification circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})

	if reg != nil {
		reg.MustRegister(n.sent)
	}

	return n
}

func (n *Notifier) Configured() bool {
	return n.sender != nil
}

// NotifyContact emails staff about a stored contact message.
func (n *Notifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) Outcome {
	logger := log.GetLoggerInstanceFromContext(ctx, n.logger)

	if !n.Configured() {
		logger.Error("RESEND_API_KEY not configured, contact notification skipped", "key", msg.Key())
		return n.record(kindContact, OutcomeNotConfigured)
	}

	body, err := renderContact(msg)
	if err != nil {
		logger.Error("Failed to render contact email", "error", err)
		return n.record(kindContact, OutcomeFailed)
	}

	return n.deliver(ctx, kindContact, SendRequest{
		To:      n.config.To,
		From:    n.config.ContactFrom,
		Subject: "LangPal Contact Form: " + msg.Subject,
		HTML:    body,
		ReplyTo: msg.Email,
	})
}

// NotifyTeamApplication emails staff about a stored team application.
func (n *Notifier) NotifyTeamApplication(ctx context.Context, app *models.TeamApplication) Outcome {
	logger := log.GetLoggerInstanceFromContext(ctx, n.logger)

	if !n.Configured() {
		logger.Warn("RESEND_API_KEY not configured, team application notification skipped", "key", app.Key())
		return n.record(kindTeamApplication, OutcomeNotConfigured)
	}

	body, err := renderTeamApplication(app)
	if err != nil {
		logger.Error("Failed to render team application email", "error", err)
		return n.record(kindTeamApplication, OutcomeFailed)
	}

	return n.deliver(ctx, kindTeamApplication, SendRequest{
		To:      n.config.To,
		From:    n.config.TeamApplicationFrom,
		Subject: "New Team Application: " + app.Position,
		HTML:    body,
		ReplyTo: app.Email,
	})
}

func (n *Notifier) deliver(ctx context.Context, kind string, req SendRequest) Outcome {
	logger := log.GetLoggerInstanceFromContext(ctx, n.logger)

	// The record is already stored, so a client hanging up should not cancel the email.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.config.Timeout)
	defer cancel()

	var result SendResult
	err := n.breaker.Call(func() error {
		var sendErr error
		result, sendErr = n.sender.Send(sendCtx, req)
		return sendErr
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		logger.Warn("Notification skipped, circuit breaker open", "kind", kind)
		return n.record(kind, OutcomeFailed)
	case errors.Is(err, ErrUnreachable):
		logger.Error("Email provider unreachable", "kind", kind, "error", err)
		return n.record(kind, OutcomeUnreachable)
	case err != nil:
		logger.Error("Email sending failed", "kind", kind, "error", err)
		return n.record(kind, OutcomeFailed)
	}

	logger.Info("Email sent successfully", "kind", kind, "message_id", result.MessageID, "sent_at", result.SentAt.Format(time.RFC3339))
	return n.record(kind, OutcomeSent)
}

func (n *Notifier) record(kind string, outcome Outcome) Outcome {
	n.sent.WithLabelValues(kind, string(outcome)).Inc()
	return outcome
}
