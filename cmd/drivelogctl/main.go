package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"drivelog/internal/cli"
	"drivelog/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	// Logs go to stderr so command output stays clean.
	logger := cli.SetupLogger(cfg, "cli", os.Stderr)

	ctx := context.Background()
	journal, err := cli.InitJournal(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() {
		if err := journal.Close(); err != nil {
			logger.Warn("Failed to close journal", "error", err)
		}
	}()

	app := terminal.NewCLI(terminal.Options{
		Journal: journal,
		Output:  os.Stdout,
		Timeout: 30 * time.Second,
	})
	return app.ExecuteContext(ctx)
}
