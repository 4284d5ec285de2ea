package di

import (
	"context"
	"errors"
	"log/slog"

	"twse_ingest/internal/config"
	"twse_ingest/internal/feature/ingest/transport/handler"
	"twse_ingest/internal/feature/ingest/usecase"
	platformhandler "twse_ingest/internal/platform/http/handler"
)

// Ingest holds the wired ingestion pipeline and the resources it owns.
type Ingest struct {
	Usecase *usecase.IngestUsecase
	// Runs is nil when no run recorder is available.
	Runs   handler.RunReader
	Checks map[string]platformhandler.Check

	closers []func() error
}

// Close releases the warehouse and Redis connections.
func (i *Ingest) Close() error {
	var errs []error
	for _, c := range i.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewIngest wires the ingestion pipeline from configuration.
func NewIngest(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Ingest, error) {
	wh, err := NewWarehouse(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	out := &Ingest{
		Checks:  map[string]platformhandler.Check{},
		closers: []func() error{wh.Close},
	}
	if wh.Check != nil {
		out.Checks["warehouse"] = wh.Check
	}

	tw := NewTWSEClient(cfg.TWSE)
	calendar := usecase.NewTradingDayClassifier(usecase.NewHolidayResolver(tw, logger), cfg.Location)
	feed := usecase.NewFeedParser(tw, logger)

	opts := []usecase.IngestOption{usecase.WithLocation(cfg.Location)}
	if rec, rdb := NewRunRecorder(ctx, cfg.Redis, logger); rec != nil {
		opts = append(opts, usecase.WithRecorder(rec))
		out.Runs = rec
		out.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		out.closers = append(out.closers, rdb.Close)
	}

	out.Usecase = usecase.NewIngestUsecase(cfg.StockCodes, calendar, feed,
		usecase.NewDeduplicationFilter(wh, logger), usecase.NewPersister(wh, logger), logger, opts...)
	return out, nil
}
