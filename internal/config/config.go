// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/statistics"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	UniversePath     string // Empty = embedded default universe
	ScoringTablePath string // Empty = embedded default questionnaire table

	TradingDays    int
	AnnualizeStats bool
	WeightDecimals int
	FrontierPoints int

	Optimizer OptimizerConfig
}

// OptimizerConfig selects and bounds the portfolio solver.
type OptimizerConfig struct {
	Solver        string // active_set or gradient
	MaxIterations int
}

// ToOptimizationConfig converts to the optimizer's own configuration type.
func (c OptimizerConfig) ToOptimizationConfig() optimization.Config {
	return optimization.Config{
		Solver:        optimization.Solver(c.Solver),
		MaxIterations: c.MaxIterations,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	def := optimization.DefaultConfig()
	cfg := &Config{
		Port:             getEnvAsInt("GO_PORT", 8001),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		UniversePath:     getEnv("UNIVERSE_PATH", ""),
		ScoringTablePath: getEnv("SCORING_TABLE_PATH", ""),
		TradingDays:      getEnvAsInt("TRADING_DAYS", statistics.DefaultTradingDays),
		AnnualizeStats:   getEnvAsBool("ANNUALIZE_STATS", true),
		WeightDecimals:   getEnvAsInt("WEIGHT_DECIMALS", 5),
		FrontierPoints:   getEnvAsInt("FRONTIER_POINTS", optimization.DefaultFrontierPoints),
		Optimizer: OptimizerConfig{
			Solver:        getEnv("OPTIMIZER_SOLVER", string(def.Solver)),
			MaxIterations: getEnvAsInt("OPTIMIZER_MAX_ITERATIONS", def.MaxIterations),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every value is in range
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: GO_PORT %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.TradingDays <= 0 {
		return fmt.Errorf("%w: TRADING_DAYS must be positive, got %d", ErrInvalidConfig, c.TradingDays)
	}
	if c.WeightDecimals < 0 || c.WeightDecimals > 15 {
		return fmt.Errorf("%w: WEIGHT_DECIMALS must be between 0 and 15, got %d", ErrInvalidConfig, c.WeightDecimals)
	}
	if c.FrontierPoints < 2 {
		return fmt.Errorf("%w: FRONTIER_POINTS must be at least 2, got %d", ErrInvalidConfig, c.FrontierPoints)
	}
	if !optimization.Solver(c.Optimizer.Solver).Valid() {
		return fmt.Errorf("%w: unknown OPTIMIZER_SOLVER %q", ErrInvalidConfig, c.Optimizer.Solver)
	}
	if c.Optimizer.MaxIterations <= 0 {
		return fmt.Errorf("%w: OPTIMIZER_MAX_ITERATIONS must be positive, got %d", ErrInvalidConfig, c.Optimizer.MaxIterations)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
