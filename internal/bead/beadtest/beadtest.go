// Package beadtest has helpers for driving games against a bead.Engine in
// tests.
package beadtest

import (
	"beads/internal/bead"
	"beads/internal/sound"
)

// Played collects the sounds an engine publishes.
type Played struct {
	Names   []string
	Volumes []float64
}

// Last returns the most recent sound name, or "".
func (p *Played) Last() string {
	if len(p.Names) == 0 {
		return ""
	}
	return p.Names[len(p.Names)-1]
}

// Reset forgets everything recorded so far.
func (p *Played) Reset() {
	p.Names = p.Names[:0]
	p.Volumes = p.Volumes[:0]
}

// NewEngine returns an engine that validates sound names like the
// desktop host, seeded with a deterministic Rand, plus a recorder of the
// sounds it plays.
func NewEngine(opts ...bead.Option) (*bead.Engine, *Played) {
	opts = append([]bead.Option{bead.WithSoundCheck(sound.Validate)}, opts...)
	e := bead.NewEngine(opts...)
	p := &Played{}
	e.Events().Subscribe(bead.EventSound, func(ev bead.Event) {
		p.Names = append(p.Names, ev.Name)
		p.Volumes = append(p.Volumes, ev.Volume)
	})
	return e, p
}

// Run advances the engine n ticks.
func Run(e *bead.Engine, n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}
