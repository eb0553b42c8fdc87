// Package notify delivers staff notifications for new contact messages and team
// applications. Delivery is best effort: callers get an Outcome, never an error.
package notify

import (
	"context"
	"errors"
	"time"
)

// ErrUnreachable marks a send that never got an answer from the provider (DNS, connect,
// timeout). A provider that answers with an error status is not unreachable.
var ErrUnreachable = errors.New("email provider unreachable")

// SendRequest is one outgoing email.
type SendRequest struct {
	To      []string
	From    string // e.g. "LangPal Contact Form <onboarding@resend.dev>"
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult is what the provider reports back for an accepted email.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

//go:generate mockgen -source=sender.go -destination=mock_sender.go -package=notify

// Sender hands an email to an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
