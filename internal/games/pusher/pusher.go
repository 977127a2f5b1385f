// Package pusher is a block-pushing puzzle: walk the cyan player to the
// red goal within a move budget, shoving white blocks out of the way.
package pusher

import (
	"fmt"
	"strconv"
	"strings"

	"beads/internal/bead"
)

const (
	App  = "imgd2900"
	Team = "teamname"

	size = 31

	// TimerUpBonus is the number of moves an orange pickup adds.
	TimerUpBonus = 25
)

var (
	playerColor  = bead.Cyan
	floorColor   = bead.GrayLight
	wallColor    = bead.GrayDark
	pushColor    = bead.White
	timerUpColor = bead.Orange
	goalColor    = bead.Red
)

// Kind is what occupies a bead. It is stored as the bead's data.
type Kind int

const (
	Floor Kind = iota + 1
	Wall
	PushBlock
	Goal
	TimerUp
)

// Difficulty sets the move budget.
type Difficulty int

const (
	Hard Difficulty = iota
	Normal
	Easy
)

// Budget is the number of moves a player starts with.
func (d Difficulty) Budget() int {
	switch d {
	case Easy:
		return 300
	case Normal:
		return 200
	default:
		return 100
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	default:
		return "hard"
	}
}

// ParseDifficulty maps "hard", "normal" or "easy" to a Difficulty. An
// empty string means Hard.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hard":
		return Hard, nil
	case "normal":
		return Normal, nil
	case "easy":
		return Easy, nil
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}

type Game struct {
	bead.Handlers
	h bead.Host

	difficulty Difficulty
	playing    bool
	moves      int
	level      int
	px, py     int
}

func New(d Difficulty) *Game {
	return &Game{difficulty: d}
}

func (g *Game) Init(h bead.Host) {
	g.h = h
	h.GridSize(size, size)
	h.Border(bead.All, bead.All, 0)
	g.setMoves(g.difficulty.Budget())
	g.loadLevel(0)
	bead.ReportStartup(h, App, Team, false)
}

// Level returns the zero-based current level.
func (g *Game) Level() int { return g.level }

// Moves returns the remaining move budget.
func (g *Game) Moves() int { return g.moves }

// Player returns the player's position.
func (g *Game) Player() (int, int) { return g.px, g.py }

func (g *Game) KeyDown(key int, _, _ bool) {
	switch key {
	case bead.KeyArrowUp, 'W', 'w':
		g.Move(0, -1)
	case bead.KeyArrowDown, 'S', 's':
		g.Move(0, 1)
	case bead.KeyArrowLeft, 'A', 'a':
		g.Move(-1, 0)
	case bead.KeyArrowRight, 'D', 'd':
		g.Move(1, 0)
	}
}

// Move tries to step the player by (dx, dy) and reports whether it moved.
func (g *Game) Move(dx, dy int) bool {
	if !g.playing {
		return false
	}
	nx, ny := g.px+dx, g.py+dy
	if !g.h.InGrid(nx, ny) {
		return false
	}

	switch g.kind(nx, ny) {
	case Wall:
		return false
	case PushBlock:
		bx, by := nx+dx, ny+dy
		if !g.h.InGrid(bx, by) || g.kind(bx, by) != Floor {
			return false
		}
		g.place(bx, by, PushBlock)
	case TimerUp:
		g.moves += TimerUpBonus
	case Goal:
		g.loadLevel((g.level + 1) % len(levels))
		g.tick()
		return true
	}

	g.place(g.px, g.py, Floor)
	g.px, g.py = nx, ny
	g.drawPlayer()
	g.tick()
	return true
}

func (g *Game) kind(x, y int) Kind {
	k, _ := g.h.Data(x, y).(Kind)
	return k
}

func (g *Game) place(x, y int, k Kind) {
	c := floorColor
	switch k {
	case Wall:
		c = wallColor
	case PushBlock:
		c = pushColor
	case Goal:
		c = goalColor
	case TimerUp:
		c = timerUpColor
	}
	g.h.Color(x, y, c)
	g.h.SetData(x, y, k)
}

func (g *Game) drawPlayer() {
	g.h.Color(g.px, g.py, playerColor)
	g.h.SetData(g.px, g.py, Floor)
}

// tick spends one move. Running out restarts from the first level.
func (g *Game) tick() {
	g.setMoves(g.moves - 1)
	if g.moves < 0 {
		g.loadLevel(0)
		g.setMoves(g.difficulty.Budget())
	}
}

func (g *Game) setMoves(n int) {
	g.moves = n
	g.h.StatusText(strconv.Itoa(n))
}

func (g *Game) loadLevel(n int) {
	g.playing = false
	g.level = n
	lv := levels[n]

	g.h.Color(bead.All, bead.All, floorColor)
	g.h.SetData(bead.All, bead.All, Floor)
	for _, p := range lv.Walls {
		g.place(p.x, p.y, Wall)
	}
	for _, p := range lv.Pushables {
		g.place(p.x, p.y, PushBlock)
	}
	for _, p := range lv.TimerUps {
		g.place(p.x, p.y, TimerUp)
	}
	g.place(lv.Goal.x, lv.Goal.y, Goal)

	g.px, g.py = lv.Start.x, lv.Start.y
	g.drawPlayer()
	g.playing = true
}
