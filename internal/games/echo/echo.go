// Package echo is a call-and-response note game. The opponent plays a
// random phrase, revealed left to right in red, and the player answers
// by touching the piano keys in column 0. Answers score for mimicry,
// for matching intervals, and for a limited number of exact overlaps.
package echo

import (
	"errors"
	"fmt"
	"log"

	"beads/internal/bead"
)

const (
	App  = "imgd2900"
	Team = "topaz"

	minSize = 7
	maxSize = 16

	revealTicks = 30
	overlaps    = 2
)

// Style selects between the piano-only version and the scales
// version with quotes and random instruments.
type Style int

const (
	Classic Style = iota
	Scales
)

func (s Style) String() string {
	if s == Scales {
		return "scales"
	}
	return "classic"
}

type Game struct {
	bead.Handlers
	h     bead.Host
	rnd   *bead.Rand
	style Style

	length, height int
	notes          []int
	placed         []int
	points         int
	overlaps       int

	canPlay     bool
	willRestart bool
	engaged     bool

	scale      int
	instrument int
	timer      bead.TimerID
	timerOn    bool
}

func New(rnd *bead.Rand, style Style) *Game {
	return &Game{rnd: rnd, style: style}
}

func (g *Game) Init(h bead.Host) {
	g.h = h
	g.startSequence()
	bead.ReportStartup(h, App, Team, g.style == Classic)
}

func (g *Game) Shutdown() { g.stopTimer() }

// Notes returns the opponent's phrase as row numbers.
func (g *Game) Notes() []int { return g.notes }

// Placed returns the rows the player has answered so far.
func (g *Game) Placed() []int { return g.placed }

func (g *Game) Points() int { return g.points }

// CanPlay reports whether the reveal has finished and answers count.
func (g *Game) CanPlay() bool { return g.canPlay }

// WillRestart reports whether the next touch starts a new phrase.
func (g *Game) WillRestart() bool { return g.willRestart }

// MaxPoints is the score shown as the denominator on the final screen.
func (g *Game) MaxPoints() int { return (g.length-4)*2 + 2 }

func (g *Game) Touch(x, y int, _ any) {
	if g.willRestart {
		g.h.AudioPlay("fx_bloop")
		g.startSequence()
		return
	}
	if x != 0 || y > g.height-3 || !g.canPlay {
		return
	}
	g.awardPoints(y)
}

func (g *Game) startSequence() {
	if g.style == Classic {
		g.h.StatusText("Points: 0")
	} else {
		g.h.StatusText("")
	}
	g.willRestart = false
	g.canPlay = false
	g.overlaps = overlaps
	g.stopTimer()
	g.genLevelBG()
	g.genRandLevel()
	g.displayNotes()
}

func (g *Game) genLevelBG() {
	g.length = max(minSize, g.rnd.Intn(maxSize))
	g.height = max(minSize, g.rnd.Intn(maxSize))
	h := g.h
	h.GridSize(g.length, g.height)
	if g.style == Scales {
		h.GridFade(120)
	}
	h.Color(bead.All, bead.All, bead.GrayLight)
	h.Border(bead.All, bead.All, 0)
	if g.style == Scales {
		h.GridColor(bead.Color{
			R: uint8(max(g.rnd.Intn(255), 220)),
			G: uint8(max(g.rnd.Intn(255), 220)),
			B: uint8(max(g.rnd.Intn(255), 220)),
		})
	}

	// piano keys
	for y := 0; y < g.height-2; y++ {
		c := bead.Black
		if y%2 == 1 {
			c = bead.White
		}
		h.Color(0, y, c)
	}
	h.Color(bead.All, g.height-1, bead.Green)
	h.Color(1, g.height-2, bead.Magenta)
	h.Color(g.length-2, g.height-2, g.rnd.Color(244))
}

func (g *Game) genRandLevel() {
	g.notes = make([]int, g.length-4)
	g.placed = g.placed[:0]
	g.points = 0
	for i := range g.notes {
		g.notes[i] = g.rnd.Intn(g.height - 2)
	}
}

// NoteName returns the sound for a note row on the current level.
func (g *Game) NoteName(row int) string {
	shifted := (g.height - 2) - row
	if g.style == Classic {
		return classicNotes[shifted]
	}
	return instruments[g.instrument] + scales[g.scale][shifted]
}

func (g *Game) playNote(row int) {
	g.h.AudioPlay(g.NoteName(row))
}

func (g *Game) displayNotes() {
	if g.style == Classic {
		g.startReveal()
		return
	}

	g.scale = g.rnd.Intn(len(scales))
	g.instrument = g.rnd.Intn(len(instruments))
	shortfast := 120
	if g.engaged {
		shortfast = 90
	}
	g.h.StatusText(g.quote())
	said := 1
	g.startTimer(shortfast, func() {
		if said > 0 {
			g.h.StatusText(g.quote())
			said--
			return
		}
		g.startReveal()
	})
}

// startReveal shows one note of the phrase every revealTicks.
func (g *Game) startReveal() {
	i := 0
	g.startTimer(revealTicks, func() {
		if i < len(g.notes) {
			g.h.Color(2+i, g.notes[i], bead.Red)
			g.playNote(g.notes[i])
			i++
			return
		}
		g.stopTimer()
		g.canPlay = true
		if g.style == Scales {
			g.h.StatusText("Points: 0")
			g.engaged = true
		}
	})
}

func (g *Game) quote() string {
	return quotes[g.rnd.Intn(len(quotes))]
}

func (g *Game) startTimer(ticks int, fn func()) {
	g.stopTimer()
	g.timer = g.h.TimerStart(ticks, fn)
	g.timerOn = true
}

func (g *Game) stopTimer() {
	if !g.timerOn {
		return
	}
	g.timerOn = false
	if err := g.h.TimerStop(g.timer); err != nil && !errors.Is(err, bead.ErrUnknownTimer) {
		log.Printf("echo: stop timer: %v", err)
	}
}

// Score classifies an answer for note i: +1 for copying the first note
// or any answer that misses, +2 for a different first note or a matching
// interval, +3 for an exact overlap while overlaps remain.
func (g *Game) Score(i, y int) (delta int, exact bool) {
	if i == 0 {
		if y == g.notes[0] {
			return 1, true
		}
		return 2, false
	}
	if y == g.notes[i] {
		if g.overlaps > 0 {
			return 3, true
		}
		return 1, true
	}
	if abs(y-g.placed[i-1]) == abs(g.notes[i]-g.notes[i-1]) {
		return 2, false
	}
	return 1, false
}

func (g *Game) awardPoints(y int) {
	if y < 0 || y > g.height-1 {
		return
	}
	i := len(g.placed)
	if i >= len(g.notes) {
		return
	}

	delta, exact := g.Score(i, y)
	if i > 0 && exact && delta == 3 {
		g.overlaps--
	}
	g.points += delta
	g.placed = append(g.placed, y)
	g.h.Color(i+2, y, g.answerColor(delta, exact))
	g.h.StatusText(fmt.Sprintf("+%d |Points: %d", delta, g.points))
	g.playNote(y)

	if i > g.length-6 {
		g.willRestart = true
		g.h.StatusText(fmt.Sprintf("Final level score: %d/%d. Click to replay.", g.points, g.MaxPoints()))
		g.h.AudioPlay("fx_powerup1")
	}
}

func (g *Game) answerColor(delta int, exact bool) bead.Color {
	if g.style == Scales {
		switch delta {
		case 3:
			return bead.Magenta
		case 2:
			return bead.Blue
		}
		return bead.Black
	}
	if exact {
		return bead.Magenta
	}
	return bead.Blue
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
