package export

import (
	"time"

	"github.com/langpal/langpal-api/config/router"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/pkg/constants"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
)

// NewExportController mounts GET /export/{waitlist,contact,team-applications}.
func NewExportController(
	store kvstore.Store,
	config *ExportConfig,
	logger *log.Logger,
) *router.RESTController {

	return router.NewRESTController(
		"ExportController",
		"/export",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewExportService(logger, store, config.EscapeCSV)

			c.RateLimitWith(rs, rs.RateLimiterFactory().CreateRateLimiter(
				"export",
				constants.ExportRequestsPerMinute,
				time.Minute,
			))

			if !config.Protected() {
				logger.Warn("Export endpoints are unauthenticated; set EXPORT_API_KEY_HASH to protect them")
			}
			auth := RequireAPIKey(config.APIKeyHash, logger)

			for _, dataset := range Datasets {
				rs.AddGetHandler(c, nil, dataset.Name, exportHandler(service, dataset), auth)
			}
		},
	)
}

func exportHandler(service ExportService, dataset Dataset) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		attachment, err := service.Export(ctx.Request.Context(), dataset.Name)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.AttachmentResult(attachment.Filename, attachment.ContentType, attachment.Body)
	}
}
