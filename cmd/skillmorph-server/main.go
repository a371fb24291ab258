// Package main provides the entry point for the skillmorph HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillmorph/assistant-go/internal/agent"
	"github.com/skillmorph/assistant-go/internal/config"
	"github.com/skillmorph/assistant-go/internal/db"
	"github.com/skillmorph/assistant-go/internal/llm"
	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/server"
	"github.com/skillmorph/assistant-go/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("skillmorph-server starting",
		"version", version,
		"provider", cfg.LLMProvider,
		"model", cfg.LLMModel,
		"port", cfg.ServerPort,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	dbClient, err := db.NewClient(ctx, db.Config{URL: cfg.DatabaseURL()}, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// Build the assistant
	collector := metrics.NewCollector()
	model, err := llm.NewModel(ctx, cfg, collector)
	if err != nil {
		logger.Error("failed to initialize model", "error", err)
		os.Exit(1)
	}

	executor := tools.NewExecutor(dbClient, logger, collector)
	assistant := agent.New(model, executor, logger, collector, cfg.MaxTurns)

	srv := server.New(cfg.ServerPort, assistant, dbClient, collector, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
