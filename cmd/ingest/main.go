package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/chirpdex/chirpdex/internal/db"
	"github.com/chirpdex/chirpdex/internal/ingest"
	"github.com/chirpdex/chirpdex/internal/source"
	"github.com/chirpdex/chirpdex/pkg/config"
	"github.com/chirpdex/chirpdex/pkg/logging"
	"github.com/chirpdex/chirpdex/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Chirpdex Ingest")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Initialize database
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	// Initialize source client
	sourceClient, err := source.New(&cfg.Source)
	if err != nil {
		logger.Fatal("Failed to initialize source client", zap.Error(err))
	}

	// Run one ingestion batch
	posts := db.NewPostRepository(db.NewRepository(database.DB))
	svc := ingest.New(sourceClient, posts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout*2)
	defer cancel()

	summary, err := svc.Run(ctx, cfg.Source.Query, cfg.Source.MaxResults)
	if err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}

	logger.Info("Ingestion finished",
		zap.Int("fetched", summary.FetchedCount),
		zap.Int("saved", summary.SavedCount))
}
