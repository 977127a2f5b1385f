// Package mosaic paints random stripes across a 31x31 grid: touching a
// bead paints its row or column, and hovering erases one.
package mosaic

import "beads/internal/bead"

const (
	App  = "imgd2900"
	Team = "topaz"

	size = 31
)

// Pattern is the kind of stripe a touch paints.
type Pattern int

const (
	Row Pattern = iota
	Column
	OddColumns // every other bead in the row, starting at x=1
	OddRows    // every other bead in the column, starting at y=1
)

type Game struct {
	bead.Handlers
	h   bead.Host
	rnd *bead.Rand
}

func New(rnd *bead.Rand) *Game {
	return &Game{rnd: rnd}
}

func (g *Game) Init(h bead.Host) {
	g.h = h
	h.GridSize(size, size)
	h.Border(bead.All, bead.All, 0)
	h.GridColor(bead.Hex(0x737070))
	h.StatusText("Mosaic Maker")
	bead.ReportStartup(h, App, Team, true)
}

func (g *Game) Touch(x, y int, _ any) {
	c := g.rnd.Color(255)
	g.Paint(Pattern(g.rnd.Intn(12)%4), x, y, c)
	g.h.AudioPlay("xylo_c5")
}

// Paint applies p through bead (x, y).
func (g *Game) Paint(p Pattern, x, y int, c bead.Color) {
	switch p {
	case Row:
		g.h.Color(bead.All, y, c)
	case Column:
		g.h.Color(x, bead.All, c)
	case OddColumns:
		for i := 1; i < size; i += 2 {
			g.h.Color(i, y, c)
		}
	case OddRows:
		for i := 1; i < size; i += 2 {
			g.h.Color(x, i, c)
		}
	}
}

func (g *Game) Enter(x, y int, _ any) {
	switch g.rnd.Intn(4) {
	case 0:
		g.h.Color(bead.All, y, bead.White)
	case 1:
		g.h.Color(x, bead.All, bead.White)
	default:
		return
	}
	g.h.AudioPlay("xylo_a4", bead.Volume(0.25))
}
