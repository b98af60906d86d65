package recommendation

import (
	"context"
	"fmt"
	"math"

	"github.com/aristath/allocator/internal/metrics"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"github.com/aristath/allocator/internal/modules/statistics"
	"github.com/aristath/allocator/internal/modules/universe"
	"github.com/aristath/allocator/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds service settings.
type Config struct {
	TradingDays    int
	WeightDecimals int
	FrontierPoints int
	Annualize      bool // Default for Options.Annualize
}

// Service produces recommendations against a fixed universe.
type Service struct {
	assessor  Assessor
	optimizer PortfolioOptimizer
	universe  *universe.Universe
	metrics   *metrics.Registry
	cfg       Config
	log       zerolog.Logger
}

// NewService creates a recommendation service. metrics may be nil.
func NewService(
	assessor Assessor,
	optimizer PortfolioOptimizer,
	u *universe.Universe,
	m *metrics.Registry,
	cfg Config,
	log zerolog.Logger,
) *Service {
	if cfg.TradingDays <= 0 {
		cfg.TradingDays = statistics.DefaultTradingDays
	}
	if cfg.FrontierPoints < 2 {
		cfg.FrontierPoints = optimization.DefaultFrontierPoints
	}

	return &Service{
		assessor:  assessor,
		optimizer: optimizer,
		universe:  u,
		metrics:   m,
		cfg:       cfg,
		log:       log.With().Str("service", "recommendation").Logger(),
	}
}

// DefaultOptions returns the configured defaults.
func (s *Service) DefaultOptions() Options {
	return Options{Annualize: s.cfg.Annualize}
}

// Assess scores answers without optimizing.
func (s *Service) Assess(answers riskprofile.Answers) riskprofile.Assessment {
	return s.assessor.Assess(answers)
}

// Recommend scores the answers, optimizes the portfolio for the resulting aversion and
// computes its statistics.
func (s *Service) Recommend(answers riskprofile.Answers, opts Options) (*Recommendation, error) {
	stop := utils.OperationTimer("recommend", s.log)

	assessment := s.assessor.Assess(answers)
	aversion := assessment.Aversion.Float64()
	mu := s.universe.Mu()
	sigma := s.universe.Covariance()

	result, err := s.optimizer.Optimize(mu, sigma, aversion)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize portfolio: %w", err)
	}
	s.metrics.RecordOptimization(string(result.Solver), string(result.Reason), result.Iterations)

	stats, err := statistics.Compute(result.Weights, mu, sigma, aversion)
	if err != nil {
		return nil, fmt.Errorf("failed to compute portfolio statistics: %w", err)
	}

	rec := &Recommendation{
		ID:         uuid.New().String(),
		Aversion:   assessment.Aversion,
		RawScore:   assessment.RawScore,
		Profile:    assessment.Profile,
		Assets:     s.universe.IDs(),
		Weights:    roundWeights(result.Weights, s.cfg.WeightDecimals),
		RawWeights: result.Weights,
		Stats:      stats,
		Optimizer: OptimizerInfo{
			Solver:     result.Solver,
			Status:     result.Status,
			Reason:     result.Reason,
			Iterations: result.Iterations,
		},
	}
	if opts.Annualize {
		annual := statistics.Annualize(stats, s.cfg.TradingDays)
		rec.AnnualStats = &annual
	}

	s.metrics.RecordRecommendation(assessment.Aversion.String(), stop())

	s.log.Info().
		Str("id", rec.ID).
		Int("raw_score", rec.RawScore).
		Int("aversion", int(rec.Aversion)).
		Str("status", string(result.Status)).
		Float64("expected_return", stats.Return).
		Float64("std_dev", stats.StdDev).
		Msg("Recommendation produced")

	return rec, nil
}

// Universe returns every asset with its daily and annualized figures.
func (s *Service) Universe() (*UniverseSummary, error) {
	figures, err := statistics.AssetSummary(s.universe.Mu(), s.universe.Covariance(), s.cfg.TradingDays)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize universe: %w", err)
	}

	assets := s.universe.Assets()
	out := make([]UniverseAsset, len(assets))
	for i, a := range assets {
		out[i] = UniverseAsset{Asset: a, AssetFigures: figures[i]}
	}

	return &UniverseSummary{TradingDays: s.cfg.TradingDays, Assets: out}, nil
}

// Frontier traces the efficient frontier. Non-positive points uses the configured count.
func (s *Service) Frontier(points int) (*Frontier, error) {
	if points <= 0 {
		points = s.cfg.FrontierPoints
	}

	raw, err := s.optimizer.Frontier(s.universe.Mu(), s.universe.Covariance(), points)
	if err != nil {
		return nil, fmt.Errorf("failed to trace efficient frontier: %w", err)
	}

	out := make([]FrontierPoint, len(raw))
	for i, p := range raw {
		p.Weights = roundWeights(p.Weights, s.cfg.WeightDecimals)
		annualReturn, annualVol := statistics.AnnualizePoint(p.Return, p.Variance, s.cfg.TradingDays)
		out[i] = FrontierPoint{FrontierPoint: p, AnnualReturn: annualReturn, AnnualVolatility: annualVol}
	}

	return &Frontier{TradingDays: s.cfg.TradingDays, Assets: s.universe.IDs(), Points: out}, nil
}

// Sensitivity optimizes for each aversion value. An empty list sweeps
// optimization.DefaultSweepAversions.
func (s *Service) Sensitivity(ctx context.Context, aversions []float64) (*Sensitivity, error) {
	if len(aversions) == 0 {
		aversions = optimization.DefaultSweepAversions()
	}

	mu := s.universe.Mu()
	sigma := s.universe.Covariance()

	sweep, err := s.optimizer.Sweep(ctx, mu, sigma, aversions)
	if err != nil {
		return nil, fmt.Errorf("failed to run sensitivity sweep: %w", err)
	}

	points := make([]SensitivityPoint, len(sweep))
	for i, p := range sweep {
		s.metrics.RecordOptimization(string(p.Solver), string(p.Reason), p.Iterations)

		stats, err := statistics.Compute(p.Weights, mu, sigma, p.Aversion)
		if err != nil {
			return nil, fmt.Errorf("failed to compute statistics for A=%v: %w", p.Aversion, err)
		}
		points[i] = SensitivityPoint{
			Aversion: p.Aversion,
			Weights:  roundWeights(p.Weights, s.cfg.WeightDecimals),
			Status:   p.Status,
			Reason:   p.Reason,
			Stats:    stats,
		}
	}

	return &Sensitivity{Assets: s.universe.IDs(), Points: points}, nil
}

// roundWeights rounds each weight to decimals places for display.
func roundWeights(weights []float64, decimals int) []float64 {
	scale := math.Pow(10, float64(decimals))
	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = math.Round(w*scale) / scale
	}
	return out
}
