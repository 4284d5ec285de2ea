package di

import (
	"context"
	"fmt"
	"log/slog"

	"twse_ingest/internal/config"
	"twse_ingest/internal/feature/ingest/adapters"
	"twse_ingest/internal/feature/ingest/usecase"
	"twse_ingest/internal/platform/bigquery"
	"twse_ingest/internal/platform/db"
	platformhandler "twse_ingest/internal/platform/http/handler"
)

// Warehouse bundles the selected warehouse backend with its health check and cleanup.
type Warehouse struct {
	usecase.Warehouse
	Check platformhandler.Check
	Close func() error
}

// NewWarehouse opens the warehouse backend selected by cfg.Backend.
func NewWarehouse(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Warehouse, error) {
	switch cfg.Backend {
	case config.BackendMySQL:
		gdb, err := db.OpenDB(cfg.DB, &adapters.StockRecordModel{})
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		logger.Info("using mysql warehouse", "database", cfg.DB.Name)
		return &Warehouse{
			Warehouse: adapters.NewStockRecordRepository(gdb),
			Check:     sqlDB.PingContext,
			Close:     sqlDB.Close,
		}, nil

	case config.BackendBigQuery:
		client, err := bigquery.NewClient(ctx, cfg.BigQuery)
		if err != nil {
			return nil, err
		}
		var opts []adapters.BigQueryOption
		if cfg.BigQueryStringDates {
			opts = append(opts, adapters.WithStringDates())
		}
		wh := adapters.NewStockRecordBigQuery(client, cfg.BigQuery, opts...)
		if err := wh.EnsureTable(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
		logger.Info("using bigquery warehouse", "table", cfg.TableID(), "string_dates", cfg.BigQueryStringDates)
		return &Warehouse{Warehouse: wh, Close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported warehouse backend %q", cfg.Backend)
	}
}
