package kvstore

import (
	"context"
	"fmt"

	"github.com/langpal/langpal-api/internal/models"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps records in the kv_store table.
type GormStore struct {
	db     *gorm.DB
	driver string
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, driver: db.Dialector.Name()}
}

func (s *GormStore) Driver() string {
	return s.driver
}

func (s *GormStore) Set(ctx context.Context, key string, value map[string]any) error {
	entry := models.KVEntry{Key: key, Value: models.JSONMap(value)}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
	if err != nil {
		return apperrors.NewStorageError("unable to write record", err)
	}

	return nil
}

func (s *GormStore) GetByPrefix(ctx context.Context, prefix string) ([]models.KVEntry, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, apperrors.NewInvalidRequestError("invalid key prefix", err)
	}

	var entries []models.KVEntry

	err := s.db.WithContext(ctx).
		Where(clause.Like{Column: clause.Column{Name: "key"}, Value: prefix + "%"}).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewStorageError("unable to read records", err)
	}

	return entries, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("kvstore: get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("kvstore: get sql db: %w", err)
	}
	return sqlDB.Close()
}
