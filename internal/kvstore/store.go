// Package kvstore persists flat JSON records under string keys and reads them back by key
// prefix. Two backends exist: a SQL table (Postgres in production, SQLite for local runs and
// tests) and Redis.
package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/langpal/langpal-api/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

type Store interface {
	// Set upserts value under key; an existing record with the same key is replaced.
	Set(ctx context.Context, key string, value map[string]any) error
	// GetByPrefix returns every record whose key starts with prefix, in backend order.
	GetByPrefix(ctx context.Context, prefix string) ([]models.KVEntry, error)
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("kvstore: empty prefix would scan the whole store")
	}
	if strings.ContainsAny(prefix, "%_*?[]\\") {
		return fmt.Errorf("kvstore: prefix %q contains pattern characters", prefix)
	}
	return nil
}
