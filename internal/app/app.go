// Package app assembles the application: configuration in, a ready pipeline
// out. It owns construction order and teardown so commands stay thin.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/campuskit/advisor/internal/catalog"
	"github.com/campuskit/advisor/internal/chunk"
	"github.com/campuskit/advisor/internal/config"
	"github.com/campuskit/advisor/internal/index"
	"github.com/campuskit/advisor/internal/llm"
	"github.com/campuskit/advisor/internal/log"
	"github.com/campuskit/advisor/internal/rag"
)

// App is the assembled application container.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	LLM      *llm.Client
	Store    *index.Store
	Pipeline *rag.Pipeline
}

// Setup validates the configuration and wires every component. Components
// are built in dependency order; the first failure aborts with context.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level})

	client, err := llm.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing model client: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	store, err := index.Open(cfg.StorePath, cfg.Collection, client.EmbeddingFunc(), logger)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}

	mode := chunk.ModeWholeDocument
	if cfg.PerPage {
		mode = chunk.ModePerPage
	}

	pipeline := rag.New(rag.Config{
		Source:        catalog.NewLoader(cfg.CatalogDir, cfg.Structured, logger),
		ChunkConfig:   chunk.Config{Size: cfg.ChunkSize, Overlap: cfg.ChunkOverlap, Mode: mode},
		Index:         store,
		Embed:         rag.EmbedFunc(client.EmbeddingFunc()),
		Generator:     client,
		TopK:          cfg.TopK,
		HistoryBudget: cfg.HistoryMaxChars,
		Logger:        logger,
	})

	logger.Debug("application assembled",
		"provider", cfg.Provider,
		"model", cfg.ModelName,
		"store", cfg.StorePath,
		"collection", cfg.Collection)

	return &App{
		Config:   cfg,
		Logger:   logger,
		LLM:      client,
		Store:    store,
		Pipeline: pipeline,
	}, nil
}

// Close releases process-wide resources, currently the store's file lock.
func (a *App) Close() error {
	return a.Store.Close()
}

// SnapshotPath resolves the configured snapshot destination, defaulting next
// to the store.
func (a *App) SnapshotPath() string {
	if a.Config.SnapshotPath != "" {
		return a.Config.SnapshotPath
	}
	return config.DefaultSnapshotFile
}
