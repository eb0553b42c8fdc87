package export

import (
	"context"
	"fmt"

	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
)

const csvContentType = "text/csv"

// Attachment is a rendered export ready to be served or written to disk.
type Attachment struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

type ExportService interface {
	// Export renders every record of the named dataset as CSV, in store order.
	Export(ctx context.Context, dataset string) (*Attachment, error)
}

type exportService struct {
	logger *log.Logger
	store  kvstore.Store
	escape bool
}

func NewExportService(logger *log.Logger, store kvstore.Store, escapeCSV bool) ExportService {
	return &exportService{logger: logger, store: store, escape: escapeCSV}
}

func (s *exportService) Export(ctx context.Context, name string) (*Attachment, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	dataset, ok := LookupDataset(name)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown export %q", name), nil)
	}

	entries, err := s.store.GetByPrefix(ctx, dataset.Category.Prefix())
	if err != nil {
		logger.Error("Failed to list records for export", "dataset", dataset.Name, "error", err)
		return nil, apperrors.WithMessage(err, dataset.FailureMessage)
	}

	logger.Info("Export rendered", "dataset", dataset.Name, "rows", len(entries))

	return &Attachment{
		Filename:    dataset.Filename,
		ContentType: csvContentType,
		Body:        []byte(renderCSV(dataset, entries, s.escape)),
		Rows:        len(entries),
	}, nil
}
