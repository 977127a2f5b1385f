// Package cycle is a colour cycler: touching or leaving a bead steps it
// through indigo, white, green and yellow.
package cycle

import (
	"log"

	"beads/internal/bead"
)

// Game implements bead.Game.
type Game struct {
	bead.Handlers
	h bead.Host
}

func New() *Game { return &Game{} }

var order = []bead.Color{bead.Indigo, bead.White, bead.Green, bead.Yellow}

// Next returns the colour after data in the cycle. Anything that is not a
// cycle colour starts it at indigo.
func Next(data any) bead.Color {
	c, ok := data.(bead.Color)
	if !ok {
		return order[0]
	}
	for i, oc := range order {
		if oc == c {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func (g *Game) Init(h bead.Host) {
	g.h = h
	h.GridSize(21, 21)
	h.GridColor(bead.Hex(0x603030))
	h.StatusColor(bead.White)
	h.StatusText("Touch any bead")
	if err := h.AudioLoad("fx_click"); err != nil {
		log.Printf("cycle: %v", err)
	}
}

func (g *Game) Touch(x, y int, data any) {
	g.advance(x, y, data)
	g.h.AudioPlay("fx_bang")
}

func (g *Game) Enter(x, y int, _ any) {
	g.h.Glyph(x, y, '∞')
	g.h.AudioPlay("fx_click")
}

func (g *Game) Exit(x, y int, data any) {
	g.advance(x, y, data)
	g.h.AudioPlay("fx_click")
}

func (g *Game) advance(x, y int, data any) {
	next := Next(data)
	g.h.Color(x, y, next)
	g.h.SetData(x, y, next)
}
