//go:build !android

// Command beads runs one of the bead-grid games in a desktop window.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"beads/internal/bead"
	"beads/internal/config"
	"beads/internal/desktop"
	"beads/internal/games"
	"beads/internal/sound"
	"beads/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx := context.Background()
	opts := []bead.Option{
		bead.WithContext(ctx),
		bead.WithSoundCheck(sound.Validate),
	}

	if cfg.DBPath != "" {
		store, err := telemetry.Open(ctx, cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "telemetry disabled: %v\n", err)
		} else {
			defer store.Close()
			opts = append(opts, bead.WithTelemetry(store, cfg.User, cfg.Telemetry))
		}
	}

	engine := bead.NewEngine(opts...)

	if !cfg.Mute {
		player, err := sound.NewPlayer(cfg.Volume)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		}
		engine.Events().Subscribe(bead.EventSound, func(e bead.Event) {
			player.Play(e.Name, e.Volume)
		})
	}

	game, err := games.New(cfg.Game, games.Options{
		Rand:       bead.NewRand(seed),
		Difficulty: cfg.Difficulty,
	})
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	desktop.Run(desktop.Options{Title: "beads: " + cfg.Game, BeadSize: cfg.BeadSize}, engine, game)
}
