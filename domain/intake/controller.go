package intake

import (
	"time"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/pkg/constants"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
	"github.com/langpal/langpal-api/pkg/ratelimit"
)

// NewIntakeController mounts POST /waitlist, /contact and /team-application.
func NewIntakeController(
	repository SubmissionRepository,
	notifier Notifier,
	logger *log.Logger,
	opts ...Option,
) *router.RESTController {

	return router.NewRESTController(
		"IntakeController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			serviceOpts := append([]Option{WithMetricsRegisterer(rs.MetricsRegistry())}, opts...)
			service := NewIntakeService(logger, repository, notifier, serviceOpts...)

			formLimiter := createFormSubmissionRateLimiter(rs)

			rs.AddPostHandler(c, formLimiter, "waitlist", submitWaitlistHandler(service))
			rs.AddPostHandler(c, formLimiter, "contact", submitContactHandler(service))
			rs.AddPostHandler(c, formLimiter, "team-application", submitTeamApplicationHandler(service))
		},
	)
}

// All three forms share one per-IP budget, stricter than the global default.
func createFormSubmissionRateLimiter(routerService *router.RouterService) ratelimit.RateLimiter {
	return routerService.RateLimiterFactory().CreateRateLimiter(
		"forms",
		constants.FormSubmissionRequestsPerMinute,
		time.Minute,
	)
}

func bindSubmission(ctx *router.RequestContext, req any) *router.ServiceResult {
	logger := router.GetLogger(ctx)

	err := ctx.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	logger.Warn("Rejected submission", "path", ctx.FullPath(), "error", err)

	validationErrors := apperrors.FormatValidationErrors(err, req)
	if len(validationErrors) == 0 {
		return router.BadRequestResult("Invalid request body", nil)
	}

	return router.BadRequestResult(MsgMissingFields, validationErrors)
}

func errorResult(err error) *router.ServiceResult {
	return router.ErrorResult(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err),
		nil,
	)
}

func submitWaitlistHandler(service IntakeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req WaitlistRequest
		if result := bindSubmission(ctx, &req); result != nil {
			return result
		}

		response, err := service.SubmitWaitlist(ctx.Request.Context(), &req)
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(nil, response.Message)
	}
}

func submitContactHandler(service IntakeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req ContactRequest
		if result := bindSubmission(ctx, &req); result != nil {
			return result
		}

		response, err := service.SubmitContact(ctx.Request.Context(), &req)
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(nil, response.Message)
	}
}

func submitTeamApplicationHandler(service IntakeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req TeamApplicationRequest
		if result := bindSubmission(ctx, &req); result != nil {
			return result
		}

		response, err := service.SubmitTeamApplication(ctx.Request.Context(), &req)
		if err != nil {
			return errorResult(err)
		}

		return router.OKResult(nil, response.Message)
	}
}
