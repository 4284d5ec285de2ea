package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"twse_ingest/internal/feature/ingest/domain"
	"twse_ingest/internal/feature/ingest/domain/entity"
	"twse_ingest/internal/feature/ingest/usecase"
)

const defaultRunTTL = 7 * 24 * time.Hour

// RunRecorderRedis stores run reports in Redis, one key per trade date plus a "latest" pointer.
type RunRecorderRedis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.RunRecorder = (*RunRecorderRedis)(nil)

// NewRunRecorderRedis creates a RunRecorderRedis.
// If ttl is 0 it defaults to 7 days. If prefix is empty it uses "ingest:run".
func NewRunRecorderRedis(rdb *redis.Client, prefix string, ttl time.Duration) *RunRecorderRedis {
	if ttl <= 0 {
		ttl = defaultRunTTL
	}
	if prefix == "" {
		prefix = "ingest:run"
	}
	return &RunRecorderRedis{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RunRecorderRedis) dateKey(date string) string {
	return fmt.Sprintf("%s:%s", r.prefix, date)
}

func (r *RunRecorderRedis) latestKey() string {
	return r.prefix + ":latest"
}

// Record writes the report under its trade date and as the latest run.
func (r *RunRecorderRedis) Record(ctx context.Context, report entity.RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.dateKey(report.TradeDate), data, r.ttl)
	pipe.Set(ctx, r.latestKey(), data, r.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Latest returns the most recently recorded report.
func (r *RunRecorderRedis) Latest(ctx context.Context) (entity.RunReport, error) {
	return r.get(ctx, r.latestKey())
}

// ByDate returns the last report recorded for the given trade date (YYYY-MM-DD).
func (r *RunRecorderRedis) ByDate(ctx context.Context, date string) (entity.RunReport, error) {
	return r.get(ctx, r.dateKey(date))
}

func (r *RunRecorderRedis) get(ctx context.Context, key string) (entity.RunReport, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.RunReport{}, domain.ErrRunNotFound
		}
		return entity.RunReport{}, err
	}

	var report entity.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return entity.RunReport{}, fmt.Errorf("failed to unmarshal run report: %w", err)
	}
	return report, nil
}
