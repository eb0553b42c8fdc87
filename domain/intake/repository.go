package intake

import (
	"context"
	"time"

	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/models"
)

const defaultWriteTimeout = 10 * time.Second

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=intake

type SubmissionRepository interface {
	// Save upserts the submission under its composite key.
	Save(ctx context.Context, submission models.Submission) error
}

type submissionRepository struct {
	store        kvstore.Store
	writeTimeout time.Duration
}

func NewSubmissionRepository(store kvstore.Store, writeTimeout time.Duration) SubmissionRepository {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &submissionRepository{store: store, writeTimeout: writeTimeout}
}

// Save runs detached from ctx's cancellation: once issued, a write is not abandoned because
// the client went away. It is still bounded by writeTimeout.
func (r *submissionRepository) Save(ctx context.Context, submission models.Submission) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()

	return r.store.Set(writeCtx, submission.Key(), submission.Fields())
}
