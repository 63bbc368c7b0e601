package config_test

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pdptw/config"
)

func TestLoad_DefaultsWithNoFlags(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.TimeLimitS)
	assert.Equal(t, 20, cfg.MaxILSIterations)
	assert.Equal(t, 500, cfg.LNSIterations)
	assert.Equal(t, 8, cfg.DestroyMin)
	assert.Equal(t, 30, cfg.DestroyMax)
	assert.Equal(t, 1000, cfg.LAHCHistory)
	assert.Equal(t, 20, cfg.LocalSearchEvery)
	assert.Equal(t, 5, cfg.NoImprovementStop)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.TimeLimit())
}

func TestLoad_FlagsOverrideDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.Flags(fs)
	require.NoError(t, fs.Parse([]string{"--TIME_LIMIT_S=5", "--SEED=99", "--LOG_LEVEL=debug"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TimeLimitS)
	assert.Equal(t, 5*time.Second, cfg.TimeLimit())
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
}
