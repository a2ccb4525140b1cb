package main

import (
	"context"
	"fmt"
	"os"

	"budgetguard/internal/amqp"
	"budgetguard/internal/auth"
	"budgetguard/internal/cli"
	"budgetguard/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	// AMQP is optional: transactions are always stored locally and the
	// recorded events only feed the sheet mirror.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, events disabled", "error", err)
			events = nil
		}
	}

	tracker := services.NewTracker(repo, events, cfg.AlertThreshold)
	defer tracker.Close()

	app := cli.NewApp(tracker, auth.NewService(repo), os.Stdin, os.Stdout)
	return app.Run(context.Background(), os.Args[1:])
}
