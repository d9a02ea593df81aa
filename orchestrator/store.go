package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shortsfactory/config"
	"shortsfactory/types"
)

const resultKeyPrefix = "shortsfactory:results:"

// ResultStore persists render results in Redis so they survive restarts.
// It is optional; a nil store disables persistence.
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultStoreFromEnv returns a store when REDIS_ADDR is configured,
// nil otherwise.
func NewResultStoreFromEnv(ctx context.Context) *ResultStore {
	addr := config.GetEnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       config.GetEnvIntOrDefault("REDIS_DB", 0),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil
	}
	return &ResultStore{client: client, ttl: 7 * 24 * time.Hour}
}

// SaveResult writes a result record keyed by job ID.
func (s *ResultStore) SaveResult(ctx context.Context, result *types.RenderResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := s.client.Set(ctx, resultKeyPrefix+result.JobID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to persist result: %w", err)
	}
	return nil
}

// LoadResult reads a previously saved result. Missing keys return nil, nil.
func (s *ResultStore) LoadResult(ctx context.Context, jobID string) (*types.RenderResult, error) {
	data, err := s.client.Get(ctx, resultKeyPrefix+jobID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	var result types.RenderResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	return &result, nil
}
