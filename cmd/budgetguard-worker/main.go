package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"budgetguard/internal/amqp"
	"budgetguard/internal/cli"
	gsheet "budgetguard/internal/sheets/google"
	"budgetguard/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	logger.Info("Starting budgetguard-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// Mirroring recorded transactions to the sheet is this process's only
	// job, so both the spreadsheet and the queue are required.
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the worker")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheet, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer events.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sync := worker.NewSyncWorker(repo, sheet)

	go func() {
		if err := events.ConsumeTransactionRecorded(ctx, sync.HandleRecorded); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	logger.Info("Worker started, consuming recorded transactions",
		slog.String("queue", cfg.AMQPQueue),
		slog.String("exchange", cfg.AMQPExchange))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	cancel()
	logger.Info("Worker stopped")
}
