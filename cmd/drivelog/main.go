package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"drivelog/internal/cli"
	apphttp "drivelog/internal/http"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.SetupLogger(nil, "server", nil).Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, "server", nil)

	journal, err := cli.InitJournal(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("Failed to open journal", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, journal, apphttp.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		_ = journal.Close()
		os.Exit(1)
	}

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := journal.Close(); err != nil {
			logger.Error("Failed to close journal", "error", err)
		}
	})

	logger.Info("Starting drivelog server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
