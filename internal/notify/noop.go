package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/langpal/langpal-api/internal/log"
)

// NoopSender logs instead of delivering. Used for NOTIFY_DRY_RUN in local setups.
type NoopSender struct {
	logger *log.Logger
}

func NewNoopSender(logger *log.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)
	logger.Info("noop email send", "to", req.To, "subject", req.Subject)

	now := time.Now()
	return SendResult{MessageID: fmt.Sprintf("noop-%d", now.UnixNano()), SentAt: now}, nil
}
