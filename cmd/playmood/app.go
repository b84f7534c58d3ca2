package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/glebk/playmood/internal/config"
	"github.com/glebk/playmood/internal/llm"
	"github.com/glebk/playmood/internal/narrative"
	"github.com/glebk/playmood/internal/observability"
	"github.com/glebk/playmood/internal/repository/sqlite"
	"github.com/glebk/playmood/internal/service"
)

// app holds the wired components shared by the subcommands
type app struct {
	db       *sqlite.Database
	registry *prometheus.Registry
	metrics  *observability.Metrics
	analysis *service.AnalysisService
}

func openDatabase(cfg *config.Config, logger *zap.Logger) (*sqlite.Database, error) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("database initialized", zap.String("path", cfg.DatabasePath))
	return db, nil
}

// newLLMClient returns nil when the mock backend is configured, which makes
// every narrative use the fallback template.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	if cfg.LLM.UseMock {
		logger.Info("text generation disabled, using fallback narratives")
		return nil, nil
	}

	client, err := llm.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		return nil, err
	}
	logger.Info("text generation enabled", zap.String("model", cfg.LLM.Model))
	return client, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		db.Close()
		return nil, err
	}

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	var narrator narrative.Narrator = narrative.New(client, metrics, logger)
	if cfg.Narrative.CacheSize > 0 {
		cached, err := narrative.NewCached(narrator, cfg.Narrative.CacheSize, cfg.Narrative.CacheTTL, metrics)
		if err != nil {
			db.Close()
			return nil, err
		}
		narrator = cached
	}

	analysis := service.NewAnalysisService(
		sqlite.NewGameRepository(db),
		sqlite.NewSessionRepository(db),
		narrator,
		metrics,
		logger,
	)

	return &app{
		db:       db,
		registry: registry,
		metrics:  metrics,
		analysis: analysis,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
