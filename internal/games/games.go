// Package games maps game names to constructors.
package games

import (
	"errors"
	"fmt"
	"sort"

	"beads/internal/bead"
	"beads/internal/games/cycle"
	"beads/internal/games/echo"
	"beads/internal/games/mosaic"
	"beads/internal/games/pusher"
)

// ErrUnknownGame is returned by New for a name not in the registry.
var ErrUnknownGame = errors.New("unknown game")

// Options carries what a constructor may need.
type Options struct {
	Rand       *bead.Rand
	Difficulty string
}

type constructor func(Options) (bead.Game, error)

var registry = map[string]constructor{
	"cycle": func(Options) (bead.Game, error) {
		return cycle.New(), nil
	},
	"mosaic": func(o Options) (bead.Game, error) {
		return mosaic.New(o.Rand), nil
	},
	"pusher": func(o Options) (bead.Game, error) {
		d, err := pusher.ParseDifficulty(o.Difficulty)
		if err != nil {
			return nil, err
		}
		return pusher.New(d), nil
	},
	"echo-classic": func(o Options) (bead.Game, error) {
		return echo.New(o.Rand, echo.Classic), nil
	},
	"echo-scales": func(o Options) (bead.Game, error) {
		return echo.New(o.Rand, echo.Scales), nil
	},
}

// New builds the named game. A nil Rand is replaced with a fixed seed.
func New(name string, opts Options) (bead.Game, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	if opts.Rand == nil {
		opts.Rand = bead.NewRand(1)
	}
	g, err := ctor(opts)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", name, err)
	}
	return g, nil
}

// Names lists the registered games in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
