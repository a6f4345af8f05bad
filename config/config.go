// Package config loads simulation settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every runtime tunable for the simulation core.
type Config struct {
	// TickRate is the scheduler frequency in frames per second.
	TickRate float64 `env:"WOTL_TICK_RATE" envDefault:"60"`

	// LoopSeconds is the duration of one time loop.
	LoopSeconds float64 `env:"WOTL_LOOP_SECONDS" envDefault:"90"`

	// BeamMaxBounces caps mirror reflections per beam trace.
	BeamMaxBounces int `env:"WOTL_BEAM_MAX_BOUNCES" envDefault:"8"`

	// BeamMaxDistance caps each beam segment's raycast length.
	BeamMaxDistance float64 `env:"WOTL_BEAM_MAX_DISTANCE" envDefault:"200"`

	// SavePath is the fragment progress file.
	SavePath string `env:"WOTL_SAVE_PATH" envDefault:"wotl_progress.json"`

	// Seed fixes the world randomizer; zero seeds from the clock.
	Seed int64 `env:"WOTL_SEED" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"WOTL_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("tick rate must be positive, got %v", cfg.TickRate)
	}
	if cfg.LoopSeconds <= 0 {
		return Config{}, fmt.Errorf("loop duration must be positive, got %v", cfg.LoopSeconds)
	}
	if cfg.BeamMaxBounces < 0 {
		return Config{}, fmt.Errorf("bounce limit must not be negative, got %d", cfg.BeamMaxBounces)
	}
	return cfg, nil
}

// TickInterval converts the tick rate into a scheduler interval.
func (c Config) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// SlogLevel maps the configured level name onto slog's levels. Unknown names
// fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
