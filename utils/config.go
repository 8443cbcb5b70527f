package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-conway/model"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width" env:"WIDTH"`
	Height              int           `json:"height" env:"HEIGHT"`
	FrameRate           time.Duration `json:"frame_rate" env:"FRAME_RATE"`
	Pattern             string        `json:"pattern" env:"PATTERN"`
	BoardFile           string        `json:"board_file" env:"BOARD_FILE"`
	RandomDensity       float64       `json:"random_density" env:"RANDOM_DENSITY"`
	Seed                int64         `json:"seed" env:"SEED"`
	MaxGenerations      int           `json:"max_generations" env:"MAX_GENERATIONS"`
	Workers             int           `json:"workers" env:"WORKERS"`
	StopOnStagnation    bool          `json:"stop_on_stagnation" env:"STOP_ON_STAGNATION"`
	StagnationThreshold int           `json:"stagnation_threshold" env:"STAGNATION_THRESHOLD"`
	LogLevel            string        `json:"log_level" env:"LOG_LEVEL"`
}

// EnvPrefix namespaces the environment overrides, e.g. GOL_WIDTH
const EnvPrefix = "GOL_"

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              60,
		FrameRate:           100 * time.Millisecond,
		Pattern:             model.PatternRandom,
		RandomDensity:       model.DefaultAliveProbability,
		Seed:                0, // pick and log a fresh seed per run; 0 is never replayed
		MaxGenerations:      0, // run until interrupted
		Workers:             1,
		StopOnStagnation:    false,
		StagnationThreshold: 5,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ApplyEnv overlays GOL_* environment variables onto config
func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Wrap(err, "[ApplyEnv] failed to parse environment")
	}
	return nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must not be negative, got %s", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative, got %d", c.MaxGenerations)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalidConfig, "workers must be at least 1, got %d", c.Workers)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must be at least 1, got %d", c.StagnationThreshold)
	}

	if c.BoardFile == "" {
		switch c.Pattern {
		case model.PatternRandom, model.PatternGlider, model.PatternBlinker:
		default:
			return errors.Wrapf(ErrInvalidConfig, "unknown pattern %q", c.Pattern)
		}
	}
	return nil
}
