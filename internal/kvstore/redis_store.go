package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/langpal/langpal-api/internal/models"
	apperrors "github.com/langpal/langpal-api/pkg/errors"
)

const (
	redisScanCount = 500
	redisMGetBatch = 200
)

// RedisStore keeps each record as a JSON string value.
type RedisStore struct {
	client     *redis.Client
	ownsClient bool
}

// NewRedisStore uses client for reads and writes. When ownsClient is false, Close leaves the
// client open for its other users (cache, rate limiting).
func NewRedisStore(client *redis.Client, ownsClient bool) *RedisStore {
	return &RedisStore{client: client, ownsClient: ownsClient}
}

func (s *RedisStore) Driver() string {
	return DriverRedis
}

func (s *RedisStore) Set(ctx context.Context, key string, value map[string]any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewInternalServerError("unable to encode record", err)
	}

	if err := s.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return apperrors.NewStorageError("unable to write record", err)
	}

	return nil
}

func (s *RedisStore) GetByPrefix(ctx context.Context, prefix string) ([]models.KVEntry, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, apperrors.NewInvalidRequestError("invalid key prefix", err)
	}

	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, apperrors.NewStorageError("unable to read records", err)
	}

	entries := make([]models.KVEntry, 0, len(keys))

	for start := 0; start < len(keys); start += redisMGetBatch {
		end := min(start+redisMGetBatch, len(keys))
		batch := keys[start:end]

		values, err := s.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, apperrors.NewStorageError("unable to read records", err)
		}

		for i, raw := range values {
			// Deleted between SCAN and MGET.
			if raw == nil {
				continue
			}

			entry, err := decodeRedisValue(batch[i], raw)
			if err != nil {
				return nil, apperrors.NewStorageError("unable to decode record", err)
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func decodeRedisValue(key string, raw any) (models.KVEntry, error) {
	str, ok := raw.(string)
	if !ok {
		return models.KVEntry{}, fmt.Errorf("key %s: unexpected value type %T", key, raw)
	}

	value := models.JSONMap{}
	if err := json.Unmarshal([]byte(str), &value); err != nil {
		return models.KVEntry{}, fmt.Errorf("key %s: %w", key, err)
	}

	return models.KVEntry{Key: key, Value: value}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	if !s.ownsClient {
		return nil
	}
	if err := s.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
