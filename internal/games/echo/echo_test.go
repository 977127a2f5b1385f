package echo

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beads/internal/bead"
	"beads/internal/bead/beadtest"
)

func start(t *testing.T, seed uint64, style Style) (*bead.Engine, *beadtest.Played, *Game) {
	t.Helper()
	e, played := beadtest.NewEngine()
	g := New(bead.NewRand(seed), style)
	e.Start(g)
	return e, played, g
}

// reveal ticks until the phrase is fully shown.
func reveal(t *testing.T, e *bead.Engine, g *Game) {
	t.Helper()
	for i := 0; i < 10000 && !g.CanPlay(); i++ {
		e.Tick()
	}
	require.True(t, g.CanPlay(), "reveal never finished")
}

func TestLevelLayout(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		e, _, g := start(t, seed, Classic)
		w, h := e.Width(), e.Height()

		assert.GreaterOrEqual(t, w, minSize)
		assert.Less(t, w, maxSize)
		assert.GreaterOrEqual(t, h, minSize)
		assert.Less(t, h, maxSize)
		require.Len(t, g.Notes(), w-4)
		for _, n := range g.Notes() {
			assert.True(t, n >= 0 && n <= h-3, "note %d out of range", n)
		}

		assert.Equal(t, bead.Black, e.BeadColor(0, 0))
		assert.Equal(t, bead.White, e.BeadColor(0, 1))
		assert.Equal(t, bead.GrayLight, e.BeadColor(0, h-2))
		assert.Equal(t, bead.Green, e.BeadColor(w-1, h-1))
		assert.Equal(t, bead.Magenta, e.BeadColor(1, h-2))
		assert.Equal(t, "Points: 0", e.Status())
		assert.False(t, g.CanPlay())
	}
}

func TestClassicReveal(t *testing.T) {
	e, played, g := start(t, 3, Classic)
	notes := g.Notes()

	beadtest.Run(e, revealTicks*len(notes))
	for i, n := range notes {
		assert.Equal(t, bead.Red, e.BeadColor(2+i, n))
		assert.Equal(t, g.NoteName(n), played.Names[i])
		assert.True(t, strings.HasPrefix(played.Names[i], "piano_"))
	}
	assert.False(t, g.CanPlay())

	beadtest.Run(e, revealTicks)
	assert.True(t, g.CanPlay())
	assert.Zero(t, e.ActiveTimers())
}

func TestTouchIgnoredUntilPlayable(t *testing.T) {
	e, _, g := start(t, 4, Classic)
	e.Touch(0, 0)
	assert.Empty(t, g.Placed())

	reveal(t, e, g)
	e.Touch(1, 0)
	e.Touch(0, e.Height()-2)
	assert.Empty(t, g.Placed())

	e.Touch(0, 0)
	assert.Equal(t, []int{0}, g.Placed())
}

func TestScore(t *testing.T) {
	g := &Game{notes: []int{3, 5, 4, 6}, overlaps: 2}

	d, exact := g.Score(0, 3)
	assert.Equal(t, 1, d, "mimicking the first note")
	assert.True(t, exact)
	d, _ = g.Score(0, 0)
	assert.Equal(t, 2, d)

	g.placed = []int{0}
	d, exact = g.Score(1, 5)
	assert.Equal(t, 3, d, "overlap")
	assert.True(t, exact)
	d, exact = g.Score(1, 2)
	assert.Equal(t, 2, d, "same interval as 3->5")
	assert.False(t, exact)
	d, _ = g.Score(1, 1)
	assert.Equal(t, 1, d)

	g.overlaps = 0
	d, exact = g.Score(1, 5)
	assert.Equal(t, 1, d, "overlaps used up")
	assert.True(t, exact)
}

func TestPlayThroughAndRestart(t *testing.T) {
	e, played, g := start(t, 11, Classic)
	reveal(t, e, g)
	notes := append([]int(nil), g.Notes()...)
	n := len(notes)
	require.GreaterOrEqual(t, n, 3)

	for i, y := range notes {
		e.Touch(0, y)
		assert.Equal(t, bead.Magenta, e.BeadColor(2+i, y))
	}
	want := 1 + 3 + 3 + (n - 3)
	assert.Equal(t, want, g.Points())
	assert.True(t, g.WillRestart())
	assert.Equal(t, fmt.Sprintf("Final level score: %d/%d. Click to replay.", want, (e.Width()-4)*2+2), e.Status())
	assert.Equal(t, "fx_powerup1", played.Last())

	e.Touch(5, 5)
	assert.Contains(t, played.Names, "fx_bloop")
	assert.False(t, g.WillRestart())
	assert.False(t, g.CanPlay())
	assert.Empty(t, g.Placed())
	assert.Zero(t, g.Points())
	assert.Equal(t, "Points: 0", e.Status())
}

func TestStatusShowsDelta(t *testing.T) {
	e, _, g := start(t, 12, Classic)
	reveal(t, e, g)
	first := g.Notes()[0]
	miss := (first + 1) % (e.Height() - 2)

	e.Touch(0, miss)
	assert.Equal(t, "+2 |Points: 2", e.Status())
	assert.Equal(t, bead.Blue, e.BeadColor(2, miss))
}

func TestScalesFlow(t *testing.T) {
	e, played, g := start(t, 21, Scales)

	first := e.Status()
	assert.Contains(t, quotes, first)
	assert.Equal(t, 1, e.ActiveTimers())

	beadtest.Run(e, 120)
	assert.Contains(t, quotes, e.Status())
	assert.Empty(t, played.Names)

	beadtest.Run(e, 120)
	assert.Empty(t, played.Names, "reveal timer just started")

	reveal(t, e, g)
	assert.Equal(t, "Points: 0", e.Status())
	require.Len(t, played.Names, len(g.Notes()))
	prefix := played.Names[0][:strings.LastIndex(played.Names[0], "_")+1]
	assert.Contains(t, instruments, prefix)
	for i, n := range g.Notes() {
		assert.Equal(t, g.NoteName(n), played.Names[i])
	}
}

func TestScalesColours(t *testing.T) {
	e, _, g := start(t, 8, Scales)
	reveal(t, e, g)
	first := g.Notes()[0]

	e.Touch(0, first)
	assert.Equal(t, bead.Black, e.BeadColor(2, first), "+1 is black in scales")
}

func TestScalesOverlapIsMagenta(t *testing.T) {
	e, _, g := start(t, 8, Scales)
	reveal(t, e, g)
	notes := g.Notes()

	e.Touch(0, notes[0])
	delta, exact := g.Score(1, notes[1])
	require.Equal(t, 3, delta)
	require.True(t, exact)

	e.Touch(0, notes[1])
	assert.Equal(t, bead.Magenta, e.BeadColor(3, notes[1]))
}

func TestScalesColourByDelta(t *testing.T) {
	g := &Game{style: Scales}
	assert.Equal(t, bead.Magenta, g.answerColor(3, true))
	assert.Equal(t, bead.Blue, g.answerColor(2, false))
	assert.Equal(t, bead.Black, g.answerColor(1, true))
	assert.Equal(t, bead.Black, g.answerColor(1, false))
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

// failingStop reports a non-timer error from TimerStop.
type failingStop struct {
	*bead.Engine
}

func (failingStop) TimerStop(bead.TimerID) error { return errors.New("host gone") }

func TestStopTimerLogsUnexpectedErrors(t *testing.T) {
	t.Run("already cleared timer is quiet", func(t *testing.T) {
		logs := captureLog(t)
		e, _, g := start(t, 2, Classic)
		require.NoError(t, e.TimerStop(g.timer))

		g.stopTimer()
		assert.Empty(t, logs.String())
		assert.False(t, g.timerOn)
	})

	t.Run("other errors are logged", func(t *testing.T) {
		logs := captureLog(t)
		e, _ := beadtest.NewEngine()
		g := New(bead.NewRand(2), Classic)
		g.Init(failingStop{e})

		g.stopTimer()
		assert.Contains(t, logs.String(), "host gone")
	})
}

func TestScalesRevealIsFasterOnceEngaged(t *testing.T) {
	e, _, g := start(t, 5, Scales)
	reveal(t, e, g)
	for _, y := range append([]int(nil), g.Notes()...) {
		e.Touch(0, y)
	}
	require.True(t, g.WillRestart())

	e.Touch(0, 0)
	quote := e.Status()
	beadtest.Run(e, 89)
	assert.Equal(t, quote, e.Status())
	assert.Equal(t, 1, e.ActiveTimers())
	beadtest.Run(e, 1)
	assert.Contains(t, quotes, e.Status())
}

func TestShutdownStopsTimers(t *testing.T) {
	e, _, _ := start(t, 2, Classic)
	require.Equal(t, 1, e.ActiveTimers())
	e.Shutdown()
	assert.Zero(t, e.ActiveTimers())
}
