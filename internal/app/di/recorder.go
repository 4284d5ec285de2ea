package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"twse_ingest/internal/config"
	"twse_ingest/internal/feature/ingest/adapters"
	platformredis "twse_ingest/internal/platform/redis"
)

const runKeyPrefix = "ingest:run"

// NewRunRecorder connects to Redis and returns a Redis-backed run recorder.
// It returns nil when Redis is not configured or unreachable; runs are then not recorded.
func NewRunRecorder(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*adapters.RunRecorderRedis, *redis.Client) {
	if !cfg.Enabled() {
		return nil, nil
	}
	rdb, err := platformredis.NewRedisClient(ctx, cfg.Addr, cfg.Password, logger)
	if err != nil {
		logger.Warn("Redis unavailable. Running without run history.")
		return nil, nil
	}
	return adapters.NewRunRecorderRedis(rdb, runKeyPrefix, 0), rdb
}
