package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/speq1/speq-backend/internal/logger"
	"github.com/speq1/speq-backend/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	srv := initializeServer(ctx, cfg)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Server listening", "port", cfg.Port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down...")
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			logger.ErrorWithErr(ctx, "Server failed", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(ctx, "Graceful shutdown failed", err)
	}
	_ = trace.Shutdown(shutdownCtx)
}
