// Package config loads the solver's tuning knobs from environment
// variables, an optional .env file, and CLI flags, in that precedence
// order (flags win). Grounded on shivamshaw23-Hintro/config/config.go's
// viper-based Load(), extended with pflag so cmd/pdptw-solve can override
// any knob on the command line without re-deriving viper's binding logic.
package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every knob spec.md §6 names, each defaulted per that
// section.
type Config struct {
	TimeLimitS        int    `mapstructure:"TIME_LIMIT_S"`
	MaxILSIterations  int    `mapstructure:"MAX_ILS_ITERATIONS"`
	LNSIterations     int    `mapstructure:"LNS_ITERATIONS"`
	DestroyMin        int    `mapstructure:"DESTROY_MIN"`
	DestroyMax        int    `mapstructure:"DESTROY_MAX"`
	LAHCHistory       int    `mapstructure:"LAHC_HISTORY"`
	LocalSearchEvery  int    `mapstructure:"LOCAL_SEARCH_EVERY"`
	NoImprovementStop int    `mapstructure:"NO_IMPROVEMENT_STOP"`
	Seed              int64  `mapstructure:"SEED"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
}

// TimeLimit returns TimeLimitS as a time.Duration.
func (c *Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitS) * time.Second
}

// Load reads configuration from environment variables / .env, applying
// spec.md §6's defaults, then overlays any flags present in flags (nil is
// accepted — Load() is usable without a CLI layer, e.g. from tests).
func Load(flags *pflag.FlagSet) (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("TIME_LIMIT_S", 60)
	viper.SetDefault("MAX_ILS_ITERATIONS", 20)
	viper.SetDefault("LNS_ITERATIONS", 500)
	viper.SetDefault("DESTROY_MIN", 8)
	viper.SetDefault("DESTROY_MAX", 30)
	viper.SetDefault("LAHC_HISTORY", 1000)
	viper.SetDefault("LOCAL_SEARCH_EVERY", 20)
	viper.SetDefault("NO_IMPROVEMENT_STOP", 5)
	viper.SetDefault("SEED", int64(0))
	viper.SetDefault("LOG_LEVEL", "info")

	// Absent in most environments (no .env committed); env vars alone are
	// a perfectly valid configuration source.
	_ = viper.ReadInConfig()

	if flags != nil {
		if err := viper.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		TimeLimitS:        viper.GetInt("TIME_LIMIT_S"),
		MaxILSIterations:  viper.GetInt("MAX_ILS_ITERATIONS"),
		LNSIterations:     viper.GetInt("LNS_ITERATIONS"),
		DestroyMin:        viper.GetInt("DESTROY_MIN"),
		DestroyMax:        viper.GetInt("DESTROY_MAX"),
		LAHCHistory:       viper.GetInt("LAHC_HISTORY"),
		LocalSearchEvery:  viper.GetInt("LOCAL_SEARCH_EVERY"),
		NoImprovementStop: viper.GetInt("NO_IMPROVEMENT_STOP"),
		Seed:              viper.GetInt64("SEED"),
		LogLevel:          viper.GetString("LOG_LEVEL"),
	}
	return cfg, nil
}

// Flags registers every knob onto fs as an overriding CLI flag, returning
// fs for chaining. Call before pflag.Parse(), then pass fs to Load.
func Flags(fs *pflag.FlagSet) *pflag.FlagSet {
	fs.Int("TIME_LIMIT_S", 60, "wall-clock deadline, seconds")
	fs.Int("MAX_ILS_ITERATIONS", 20, "cap on outer ILS iterations")
	fs.Int("LNS_ITERATIONS", 500, "cap on inner LNS iterations per ILS step")
	fs.Int("DESTROY_MIN", 8, "minimum pairs removed per LNS step")
	fs.Int("DESTROY_MAX", 30, "maximum pairs removed per LNS step")
	fs.Int("LAHC_HISTORY", 1000, "LAHC acceptance buffer length")
	fs.Int("LOCAL_SEARCH_EVERY", 20, "local-search invocation cadence inside LNS")
	fs.Int("NO_IMPROVEMENT_STOP", 5, "consecutive non-improvements before early stop")
	fs.Int64("SEED", 0, "RNG seed")
	fs.String("LOG_LEVEL", "info", "log level: debug, info, warn, error")
	return fs
}
