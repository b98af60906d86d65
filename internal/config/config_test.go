package config

import (
	"testing"

	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allocatorEnv = []string{
	"GO_PORT", "LOG_LEVEL", "DEV_MODE", "UNIVERSE_PATH", "SCORING_TABLE_PATH",
	"TRADING_DAYS", "ANNUALIZE_STATS", "WEIGHT_DECIMALS", "FRONTIER_POINTS",
	"OPTIMIZER_SOLVER", "OPTIMIZER_MAX_ITERATIONS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allocatorEnv {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Empty(t, cfg.UniversePath)
	assert.Empty(t, cfg.ScoringTablePath)
	assert.Equal(t, 252, cfg.TradingDays)
	assert.True(t, cfg.AnnualizeStats)
	assert.Equal(t, 5, cfg.WeightDecimals)
	assert.Equal(t, 11, cfg.FrontierPoints)
	assert.Equal(t, optimization.DefaultConfig(), cfg.Optimizer.ToOptimizationConfig())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_PORT", "9100")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("TRADING_DAYS", "260")
	t.Setenv("ANNUALIZE_STATS", "false")
	t.Setenv("OPTIMIZER_SOLVER", "gradient")
	t.Setenv("OPTIMIZER_MAX_ITERATIONS", "1000")
	t.Setenv("UNIVERSE_PATH", "/etc/allocator/universe.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 260, cfg.TradingDays)
	assert.False(t, cfg.AnnualizeStats)
	assert.Equal(t, "/etc/allocator/universe.yaml", cfg.UniversePath)
	assert.Equal(t, optimization.Config{Solver: optimization.SolverGradient, MaxIterations: 1000}, cfg.Optimizer.ToOptimizationConfig())
}

func TestLoad_UnparsableValuesUseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_PORT", "not-a-number")
	t.Setenv("DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPTIMIZER_SOLVER", "simplex")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:           8001,
			TradingDays:    252,
			WeightDecimals: 5,
			FrontierPoints: 11,
			Optimizer:      OptimizerConfig{Solver: "active_set", MaxIterations: 500},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"trading days", func(c *Config) { c.TradingDays = 0 }},
		{"negative decimals", func(c *Config) { c.WeightDecimals = -1 }},
		{"too many decimals", func(c *Config) { c.WeightDecimals = 16 }},
		{"frontier points", func(c *Config) { c.FrontierPoints = 1 }},
		{"solver", func(c *Config) { c.Optimizer.Solver = "" }},
		{"iterations", func(c *Config) { c.Optimizer.MaxIterations = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
