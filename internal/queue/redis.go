package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

const popTimeout = 5 * time.Second

// RedisSource consumes message batches from a Redis list. Producers RPUSH
// JSON-encoded arrays of inbound messages; the source BLPOPs them off.
type RedisSource struct {
	rdb *redis.Client
	key string
}

// NewRedisSource connects to Redis from a URL (e.g. "redis://localhost:6379")
// and verifies the connection.
func NewRedisSource(ctx context.Context, redisURL, key string) (*RedisSource, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisSource{rdb: rdb, key: key}, nil
}

// Next blocks until a batch is available or ctx is cancelled. Payloads that
// fail to decode are logged and skipped; the consumer keeps going.
func (s *RedisSource) Next(ctx context.Context) ([]domain.InboundMessage, error) {
	for {
		res, err := s.rdb.BLPop(ctx, popTimeout, s.key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("blpop %s: %w", s.key, err)
		}

		// BLPop returns [key, value].
		var batch []domain.InboundMessage
		if err := json.Unmarshal([]byte(res[1]), &batch); err != nil {
			slog.WarnContext(ctx, "Dropping undecodable batch payload", "key", s.key, "error", err)
			continue
		}
		return batch, nil
	}
}

// Ping verifies the Redis connection.
func (s *RedisSource) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisSource) Close() error {
	return s.rdb.Close()
}
