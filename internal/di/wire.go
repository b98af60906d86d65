package di

import (
	"fmt"

	"github.com/aristath/allocator/internal/config"
	"github.com/aristath/allocator/internal/metrics"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/recommendation"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"github.com/aristath/allocator/internal/modules/universe"
	"github.com/rs/zerolog"
)

// Wire initializes all dependencies and returns a fully configured container.
// Loading order: data files, then engine components, then services.
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	// Step 1: Load data files
	container, err := InitializeData(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	// Step 2: Initialize engine and services
	if err := InitializeServices(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	log.Info().
		Int("assets", container.Universe.Len()).
		Str("solver", string(container.Optimizer.Config().Solver)).
		Msg("Dependency injection wiring completed")

	return container, nil
}

// InitializeData loads the asset universe and the scoring table.
func InitializeData(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	u, err := universe.Load(cfg.UniversePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset universe: %w", err)
	}

	table, err := riskprofile.LoadTable(cfg.ScoringTablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring table: %w", err)
	}

	log.Debug().
		Str("universe_path", sourceName(cfg.UniversePath)).
		Str("scoring_table_path", sourceName(cfg.ScoringTablePath)).
		Int("questions", len(table.Questions)).
		Msg("Data files loaded")

	return &Container{Universe: u, ScoringTable: table}, nil
}

// InitializeServices builds the engine components and the recommendation service.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	scorer, err := riskprofile.NewScorer(container.ScoringTable, log)
	if err != nil {
		return fmt.Errorf("failed to create risk scorer: %w", err)
	}
	container.Scorer = scorer

	container.Optimizer = optimization.NewMVOptimizer(cfg.Optimizer.ToOptimizationConfig(), log)
	container.Metrics = metrics.NewRegistry()

	container.RecommendationService = recommendation.NewService(
		container.Scorer,
		container.Optimizer,
		container.Universe,
		container.Metrics,
		recommendation.Config{
			TradingDays:    cfg.TradingDays,
			WeightDecimals: cfg.WeightDecimals,
			FrontierPoints: cfg.FrontierPoints,
			Annualize:      cfg.AnnualizeStats,
		},
		log,
	)

	return nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
