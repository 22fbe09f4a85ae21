package main

import (
	"context"
	"os"
	"time"

	"drivelog/internal/amqp"
	"drivelog/internal/backend"
	"drivelog/internal/cli"
	gsheet "drivelog/internal/sheets/google"
	"drivelog/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err == nil {
		err = cfg.ValidateMirror()
	}
	if err != nil {
		cli.SetupLogger(nil, "worker", nil).Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, "worker", nil)
	logger.Info("Starting drivelog-worker")

	if !cfg.MirrorEnabled() {
		logger.Error("Mirror disabled, GOOGLE_SPREADSHEET_ID is not set")
		os.Exit(1)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	source, err := backend.NewFactory(logger.Logger).CreateBackend(context.Background(), bcfg)
	if err != nil {
		logger.Error("Failed to open source store", "error", err, "backend", bcfg.Type)
		os.Exit(1)
	}
	if source.Cleanup != nil {
		defer func() {
			if err := source.Cleanup(); err != nil {
				logger.Warn("Failed to close source store", "error", err)
			}
		}()
	}

	target, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleMirrorSheetName, bcfg.GoogleCredentials())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Mirroring journal", "backend", bcfg.Type, "sheet", target.Sheet(), "interval", cfg.SyncInterval)

	var consumer worker.Consumer
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, mirroring on interval only", "error", err)
		} else {
			defer client.Close()
			consumer = client
		}
	}

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, nil)

	mirror := worker.NewMirrorWorker(source.Store, target)
	if err := mirror.Run(ctx, consumer, cfg.SyncInterval); err != nil {
		logger.Error("Mirror worker stopped", "error", err)
		os.Exit(1)
	}

	<-done
	n, last := mirror.Status()
	logger.Info("Worker stopped gracefully", "records", n, "last_run", last)
}
