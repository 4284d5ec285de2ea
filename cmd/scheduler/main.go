package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"twse_ingest/internal/app/di"
	"twse_ingest/internal/config"
	"twse_ingest/internal/platform/logger"
)

const runTimeout = 5 * time.Minute

func main() {
	os.Exit(run())
}

// run はスケジューラを停止シグナルまで動かし、終了コードを返します。
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Println("failed to load config:", err)
		return 1
	}
	l := logger.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	c, err := newScheduler(cfg.Schedule, cfg.Location, l, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		report := app.Usecase.Run(runCtx)
		l.Info("scheduled ingestion completed", "status", report.Status, "message", report.Message)
	})
	if err != nil {
		l.Error("invalid INGEST_SCHEDULE", "schedule", cfg.Schedule, "error", err)
		return 1
	}

	l.Info("scheduler started", "schedule", cfg.Schedule, "location", cfg.Location.String())
	c.Start()
	<-ctx.Done()

	l.Info("scheduler stopping")
	<-c.Stop().Done()
	return 0
}

// newScheduler は取引所のタイムゾーンで job を実行する cron を作成します。
// 前回の実行が終わっていない場合、その回はスキップされます。
func newScheduler(schedule string, loc *time.Location, l *slog.Logger, job func()) (*cron.Cron, error) {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger{l}),
		cron.WithChain(cron.Recover(cronLogger{l}), cron.SkipIfStillRunning(cronLogger{l})),
	)
	if _, err := c.AddFunc(schedule, job); err != nil {
		return nil, err
	}
	return c, nil
}

// cronLogger は cron.Logger を slog に橋渡しします。
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
