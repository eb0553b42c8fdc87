package intake

import (
	"context"
	"time"

	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/internal/models"
	"github.com/langpal/langpal-api/internal/notify"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	MsgWaitlistJoined       = "Successfully joined waitlist!"
	MsgContactSent          = "Message sent successfully! We'll get back to you soon."
	MsgContactNoEmail       = "Message received! (Email service not configured)"
	MsgContactEmailPending  = "Message received! (Email delivery pending)"
	MsgContactReceived      = "Message received! We'll get back to you soon."
	MsgApplicationSubmitted = "Application submitted successfully! We'll review it and get back to you soon."

	MsgMissingFields     = "Missing required fields"
	MsgWaitlistFailed    = "Failed to process waitlist signup"
	MsgContactFailed     = "Failed to send message"
	MsgApplicationFailed = "Failed to submit application"
)

var tracer = otel.Tracer("github.com/langpal/langpal-api/domain/intake")

//go:generate mockgen -source=service.go -destination=mock_notifier.go -package=intake -exclude_interfaces=IntakeService

// Notifier is the subset of notify.Notifier the intake flow needs.
type Notifier interface {
	NotifyContact(ctx context.Context, msg *models.ContactMessage) notify.Outcome
	NotifyTeamApplication(ctx context.Context, app *models.TeamApplication) notify.Outcome
}

type IntakeService interface {
	// SubmitWaitlist stores a waitlist signup.
	SubmitWaitlist(ctx context.Context, req *WaitlistRequest) (*SubmissionResult, error)

	// SubmitContact stores a contact message and then tries to email staff.
	SubmitContact(ctx context.Context, req *ContactRequest) (*SubmissionResult, error)

	// SubmitTeamApplication stores a team application and then tries to email staff.
	SubmitTeamApplication(ctx context.Context, req *TeamApplicationRequest) (*SubmissionResult, error)
}

type Option func(*intakeService)

// WithClock replaces time.Now as the source of submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *intakeService) { s.now = now }
}

// WithMetricsRegisterer registers the submission counter on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(s *intakeService) { s.metrics = newSubmissionMetrics(reg) }
}

type intakeService struct {
	logger     *log.Logger
	repository SubmissionRepository
	notifier   Notifier
	now        func() time.Time
	metrics    *submissionMetrics
}

func NewIntakeService(logger *log.Logger, repository SubmissionRepository, notifier Notifier, opts ...Option) IntakeService {
	s := &intakeService{
		logger:     logger,
		repository: repository,
		notifier:   notifier,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newSubmissionMetrics(nil)
	}

	return s
}

func (s *intakeService) SubmitWaitlist(ctx context.Context, req *WaitlistRequest) (*SubmissionResult, error) {
	ctx, span := startSpan(ctx, "intake.SubmitWaitlist", models.CategoryWaitlist)
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("SubmitWaitlist received empty request")
		return nil, apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	entry := ToWaitlistEntryModel(req, models.FormatTimestamp(s.now()))

	if err := s.store(ctx, span, entry); err != nil {
		return nil, apperrors.WithMessage(err, MsgWaitlistFailed)
	}

	return &SubmissionResult{Key: entry.Key(), Message: MsgWaitlistJoined}, nil
}

func (s *intakeService) SubmitContact(ctx context.Context, req *ContactRequest) (*SubmissionResult, error) {
	ctx, span := startSpan(ctx, "intake.SubmitContact", models.CategoryContact)
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("SubmitContact received empty request")
		return nil, apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	msg := ToContactMessageModel(req, models.FormatTimestamp(s.now()))

	if err := s.store(ctx, span, msg); err != nil {
		return nil, apperrors.WithMessage(err, MsgContactFailed)
	}

	outcome := s.notifier.NotifyContact(ctx, msg)
	span.SetAttributes(attribute.String("notification.outcome", string(outcome)))

	result := &SubmissionResult{Key: msg.Key(), Notification: outcome}
	switch outcome {
	case notify.OutcomeSent:
		result.Message = MsgContactSent
	case notify.OutcomeNotConfigured:
		result.Message = MsgContactNoEmail
	case notify.OutcomeUnreachable:
		result.Message = MsgContactReceived
	default:
		result.Message = MsgContactEmailPending
	}

	return result, nil
}

func (s *intakeService) SubmitTeamApplication(ctx context.Context, req *TeamApplicationRequest) (*SubmissionResult, error) {
	ctx, span := startSpan(ctx, "intake.SubmitTeamApplication", models.CategoryTeamApplication)
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("SubmitTeamApplication received empty request")
		return nil, apperrors.NewInvalidRequestError(MsgMissingFields, nil)
	}

	app := ToTeamApplicationModel(req, models.FormatTimestamp(s.now()))

	// The form offers a fixed list, but any non-empty position is kept as submitted.
	listed := models.IsTeamPosition(app.Position)
	span.SetAttributes(attribute.Bool("team_application.position_listed", listed))
	if !listed {
		logger.Warn("Team application with unlisted position", "position", app.Position)
	}

	if err := s.store(ctx, span, app); err != nil {
		return nil, apperrors.WithMessage(err, MsgApplicationFailed)
	}

	outcome := s.notifier.NotifyTeamApplication(ctx, app)
	span.SetAttributes(attribute.String("notification.outcome", string(outcome)))

	return &SubmissionResult{
		Key:          app.Key(),
		Message:      MsgApplicationSubmitted,
		Notification: outcome,
	}, nil
}

func (s *intakeService) store(ctx context.Context, span trace.Span, submission models.Submission) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	err := s.repository.Save(ctx, submission)
	s.metrics.observe(submission.Category(), err)

	if err != nil {
		logger.Error("Failed to store submission", "category", submission.Category(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		return err
	}

	logger.Info("Submission stored", "category", submission.Category(), "key", submission.Key())
	return nil
}

func startSpan(ctx context.Context, name string, category models.Category) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("submission.category", string(category)),
	))
}
