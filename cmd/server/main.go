package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twse_ingest/internal/app/di"
	"twse_ingest/internal/app/router"
	"twse_ingest/internal/config"
	"twse_ingest/internal/feature/ingest/transport/handler"
	"twse_ingest/internal/platform/logger"
)

func main() {
	os.Exit(run())
}

// run はサーバーを停止シグナルまで動かし、終了コードを返します。
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

	// Handler
	ingestH := handler.NewIngestHandler(app.Usecase, app.Runs)

	// ルータ生成
	r := router.NewRouter(ingestH, app.Checks)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		l.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server shutdown failed", "error", err)
	}

	select {
	case err := <-serveErr:
		l.Error("server failed", "error", err)
		return 1
	default:
		return 0
	}
}
