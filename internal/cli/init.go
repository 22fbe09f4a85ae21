// Package cli holds the bootstrap steps shared by cmd/drivelog,
// cmd/drivelogctl and cmd/drivelog-worker.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"drivelog/internal/amqp"
	"drivelog/internal/backend"
	"drivelog/internal/config"
	ilog "drivelog/internal/log"
	"drivelog/internal/report"
	"drivelog/internal/services"
)

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default.
func SetupLogger(cfg *config.Config, component string, out io.Writer) *ilog.Logger {
	lc := ilog.DefaultConfig()
	lc.Component = component
	if out != nil {
		lc.Output = out
	}
	if cfg != nil {
		lc.Level = ilog.ParseLevel(cfg.LogLevel)
		lc.Format = cfg.LogFormat
	}
	logger := ilog.New(lc)
	ilog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitJournal opens the configured store and, when AMQP_URL is set, an event
// publisher. A broker that cannot be reached only disables events. Closing the
// returned journal releases both.
func InitJournal(ctx context.Context, logger *ilog.Logger, cfg *config.Config) (*services.Journal, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", bcfg.Type, err)
	}

	opts := []services.Option{services.WithSummaryCache(cfg.SummaryCacheTTL)}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			opts = append(opts, services.WithPublisher(client))
		}
	}

	return services.NewJournal(res.Store, report.New(cfg.CurrencySymbol), opts...), nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM. cleanup
// runs after cancellation, bounded by timeout. done is closed when it finishes.
func GracefulShutdown(logger *ilog.Logger, timeout time.Duration, cleanup func(context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()

		if cleanup != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
			defer shutdownCancel()
			cleanup(shutdownCtx)
		}
		logger.Info("Shutdown complete")
	}()

	return ctx, done
}
