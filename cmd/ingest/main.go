package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"twse_ingest/internal/app/di"
	"twse_ingest/internal/config"
	"twse_ingest/internal/platform/logger"
)

func main() {
	os.Exit(run())
}

// run は1回分のインジェストを実行し、終了コードを返します。
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Println("failed to load config:", err)
		return 1
	}
	l := logger.New(cfg.LogLevel, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	app, err := di.NewIngest(ctx, cfg, l)
	if err != nil {
		l.Error("failed to initialize ingestion", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			l.Error("failed to close resources", "error", err)
		}
	}()

	report := app.Usecase.Run(ctx)
	fmt.Println(report.Message)
	if report.Status.Failed() {
		return 1
	}
	return 0
}
