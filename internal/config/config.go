// Package config loads runtime settings from BEADS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Window defaults.
const (
	MinBeadSize = 8
	MaxBeadSize = 64
)

// Games and Difficulties list the accepted values for Game and Difficulty.
var (
	Games        = []string{"cycle", "mosaic", "pusher", "echo-classic", "echo-scales"}
	Difficulties = []string{"hard", "normal", "easy"}
)

// Config holds everything cmd/beads needs to start a game.
type Config struct {
	Game       string  `env:"GAME" envDefault:"cycle"`
	Seed       uint64  `env:"SEED" envDefault:"0"`
	BeadSize   int     `env:"BEAD_SIZE" envDefault:"24"`
	DBPath     string  `env:"DB_PATH" envDefault:"beads.db"`
	Telemetry  bool    `env:"TELEMETRY" envDefault:"false"`
	User       string  `env:"USER"`
	Volume     float64 `env:"VOLUME" envDefault:"0.58"`
	Mute       bool    `env:"MUTE" envDefault:"false"`
	Difficulty string  `env:"DIFFICULTY" envDefault:"hard"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "BEADS_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(Games, c.Game) {
		errs = append(errs, fmt.Errorf("unknown game %q", c.Game))
	}
	if !slices.Contains(Difficulties, c.Difficulty) {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", c.Difficulty))
	}
	if c.BeadSize < MinBeadSize || c.BeadSize > MaxBeadSize {
		errs = append(errs, fmt.Errorf("bead size %d outside %d..%d", c.BeadSize, MinBeadSize, MaxBeadSize))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v outside 0..1", c.Volume))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
