package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	now    func() time.Time
}

// NewResendSender builds a sender for apiKey. A non-empty baseURL replaces the public
// API endpoint, which is how tests and regional deployments point it elsewhere.
func NewResendSender(apiKey, baseURL string) (*ResendSender, error) {
	client := resend.NewClient(apiKey)

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url %q: %w", baseURL, err)
		}
		client.BaseURL = parsed
	}

	return &ResendSender{client: client, now: time.Now}, nil
}

func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	params := &resend.SendEmailRequest{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		// The client returns *url.Error only when the HTTP round trip itself failed.
		var transportErr *url.Error
		if errors.As(err, &transportErr) {
			return SendResult{}, fmt.Errorf("resend send failed: %w: %w", ErrUnreachable, err)
		}
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	return SendResult{MessageID: sent.Id, SentAt: s.now()}, nil
}
