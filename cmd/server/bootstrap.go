package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/speq1/speq-backend/internal/docstore"
	"github.com/speq1/speq-backend/internal/engine"
	"github.com/speq1/speq-backend/internal/engine/engineobs"
	"github.com/speq1/speq-backend/internal/logger"
	"github.com/speq1/speq-backend/internal/server"
	"github.com/speq1/speq-backend/internal/sheets"
	"github.com/speq1/speq-backend/internal/store"
	"github.com/speq1/speq-backend/internal/trace"
)

// initializeSystem loads the environment and initializes logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeServer wires the external adapters, the aggregation engine,
// and the HTTP surface together.
func initializeServer(ctx context.Context, cfg *store.Config) *server.Server {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		logger.Warn(ctx, "GOOGLE_API_KEY not set - Google API calls will be unauthenticated")
	}

	fetchTimeout := time.Duration(cfg.Aggregation.FetchTimeoutSecs) * time.Second

	db := docstore.New(docstore.Params{
		ProjectID: cfg.Firestore.ProjectID,
		APIKey:    apiKey,
		BaseURL:   cfg.Firestore.BaseURL,
		Timeout:   fetchTimeout,
	})

	sheet := sheets.New(sheets.Params{
		APIKey:  apiKey,
		BaseURL: cfg.Spreadsheet.BaseURL,
		Timeout: fetchTimeout,
	})

	logger.Info(ctx, "Aggregation engine configured",
		"spreadsheet_id", cfg.Spreadsheet.ID,
		"sheet", cfg.Spreadsheet.Sheet,
		"client_workers", cfg.Aggregation.ClientWorkers,
		"group_fetch_workers", cfg.Aggregation.GroupFetchWorkers,
	)

	// Wrap with observability middleware
	agg := engineobs.Wrap(engine.New(cfg, db, sheet))

	return server.New(cfg.Port, agg)
}
