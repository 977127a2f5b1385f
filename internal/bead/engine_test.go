package bead

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	x, y int
	data any
}

type recorder struct {
	Handlers
	calls []call
}

func (r *recorder) Touch(x, y int, data any) { r.calls = append(r.calls, call{"touch", x, y, data}) }
func (r *recorder) Enter(x, y int, data any) { r.calls = append(r.calls, call{"enter", x, y, data}) }
func (r *recorder) Exit(x, y int, data any) { r.calls = append(r.calls, call{"exit", x, y, data}) }
func (r *recorder) ExitGrid() { r.calls = append(r.calls, call{name: "exitGrid"}) }
func (r *recorder) Input(s Sensors) { r.calls = append(r.calls, call{name: "input", x: s.Wheel}) }

func TestGridSizeClampsAndResets(t *testing.T) {
	e := NewEngine()
	e.Color(1, 1, Red)
	e.SetData(1, 1, "x")

	e.GridSize(40, 0)
	assert.Equal(t, MaxGridSize, e.Width())
	assert.Equal(t, 1, e.Height())

	e.GridSize(4, 4)
	assert.Equal(t, White, e.BeadColor(1, 1))
	assert.Equal(t, 0, e.Data(1, 1))
}

func TestAllAddressesRowsAndColumns(t *testing.T) {
	e := NewEngine()
	e.GridSize(3, 3)

	e.Color(All, 1, Blue)
	for x := 0; x < 3; x++ {
		assert.Equal(t, Blue, e.BeadColor(x, 1))
	}
	assert.Equal(t, White, e.BeadColor(0, 0))

	e.SetData(2, All, 7)
	for y := 0; y < 3; y++ {
		assert.Equal(t, 7, e.Data(2, y))
	}

	e.Border(All, All, 0)
	for _, b := range e.Snapshot().Beads {
		assert.Zero(t, b.Border)
	}
}

func TestOffGridIsIgnored(t *testing.T) {
	e := NewEngine()
	e.GridSize(2, 2)
	e.Color(5, 5, Red)
	assert.Nil(t, e.Data(-1, 0))
	assert.Equal(t, Color{}, e.BeadColor(2, 0))

	r := &recorder{}
	e.Start(r)
	e.Touch(2, 0)
	assert.Empty(t, r.calls)
}

func TestTouchPassesData(t *testing.T) {
	e := NewEngine()
	r := &recorder{}
	e.Start(r)
	e.SetData(3, 4, Green)

	e.Touch(3, 4)
	require.Len(t, r.calls, 1)
	assert.Equal(t, call{"touch", 3, 4, Green}, r.calls[0])
}

func TestMoveCursorEmitsEnterExit(t *testing.T) {
	e := NewEngine()
	r := &recorder{}
	e.Start(r)

	e.MoveCursor(0, 0)
	e.MoveCursor(0, 0)
	e.MoveCursor(1, 0)
	e.MoveCursor(-1, 0)
	e.MoveCursor(-2, 0)

	names := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		names = append(names, c.name)
	}
	assert.Equal(t, []string{"enter", "exit", "enter", "exit", "exitGrid"}, names)
}

func TestWheel(t *testing.T) {
	e := NewEngine()
	r := &recorder{}
	e.Start(r)
	e.Wheel(0)
	e.Wheel(-1)
	require.Len(t, r.calls, 1)
	assert.Equal(t, -1, r.calls[0].x)
}

func TestTimersRepeatUntilStopped(t *testing.T) {
	e := NewEngine()
	fired := 0
	var id TimerID
	id = e.TimerStart(3, func() {
		fired++
		if fired == 2 {
			require.NoError(t, e.TimerStop(id))
		}
	})

	for i := 0; i < 20; i++ {
		e.Tick()
	}
	assert.Equal(t, 2, fired)
	assert.Zero(t, e.ActiveTimers())
	assert.ErrorIs(t, e.TimerStop(id), ErrUnknownTimer)
}

func TestTimerStartedFromCallbackWaitsFullPeriod(t *testing.T) {
	e := NewEngine()
	var log []int
	var first TimerID
	first = e.TimerStart(1, func() {
		log = append(log, e.Now())
		_ = e.TimerStop(first)
		e.TimerStart(2, func() { log = append(log, -e.Now()) })
	})

	for i := 0; i < 5; i++ {
		e.Tick()
	}
	assert.Equal(t, []int{1, -3, -5}, log)
}

func TestAudioPlayValidatesAndPublishes(t *testing.T) {
	unknown := errors.New("unknown")
	e := NewEngine(WithSoundCheck(func(name string) error {
		if name == "fx_click" {
			return nil
		}
		return unknown
	}))

	var played []Event
	e.Events().Subscribe(EventSound, func(ev Event) { played = append(played, ev) })

	assert.ErrorIs(t, e.AudioLoad("nope"), unknown)
	e.AudioPlay("nope")
	e.AudioPlay("fx_click")
	e.AudioPlay("fx_click", Volume(2))

	require.Len(t, played, 2)
	assert.Equal(t, DefaultVolume, played[0].Volume)
	assert.Equal(t, 1.0, played[1].Volume)
}

func TestGridFadeInterpolates(t *testing.T) {
	e := NewEngine()
	e.GridColor(Black)
	e.GridFade(10)
	e.GridColor(White)

	assert.Equal(t, Black, e.Snapshot().GridColor)
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	mid := e.Snapshot().GridColor
	assert.InDelta(t, 127, int(mid.R), 1)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	assert.Equal(t, White, e.Snapshot().GridColor)
}

type fakeTelemetry struct {
	events []string
	sent   int
	fail   error
}

func (f *fakeTelemetry) Login(_ context.Context, _, _, user string) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	return user, nil
}

func (f *fakeTelemetry) Event(_ context.Context, team, name string, fields ...any) error {
	f.events = append(f.events, fmt.Sprintf("%s:%s:%v", team, name, fields))
	return nil
}

func (f *fakeTelemetry) Send(context.Context, string, bool) (int, error) {
	f.sent++
	return len(f.events), nil
}

func TestReportStartup(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		tel := &fakeTelemetry{}
		e := NewEngine(WithTelemetry(tel, "ada", false))
		ReportStartup(e, "app", "topaz", true)
		assert.Equal(t, []string{"topaz:startup:[ada]"}, tel.events)
		assert.Equal(t, 1, tel.sent)
	})

	t.Run("inactive", func(t *testing.T) {
		tel := &fakeTelemetry{}
		e := NewEngine(WithTelemetry(tel, "ada", false))
		ReportStartup(e, "app", "topaz", false)
		assert.Empty(t, tel.events)
	})

	t.Run("forced", func(t *testing.T) {
		tel := &fakeTelemetry{}
		e := NewEngine(WithTelemetry(tel, "ada", true))
		ReportStartup(e, "app", "topaz", false)
		assert.Len(t, tel.events, 1)
	})

	t.Run("no store", func(t *testing.T) {
		e := NewEngine()
		_, err := e.DBLogin("app", "topaz", true)
		assert.ErrorIs(t, err, ErrTelemetryInactive)
	})

	t.Run("login failure", func(t *testing.T) {
		tel := &fakeTelemetry{fail: errors.New("boom")}
		e := NewEngine(WithTelemetry(tel, "ada", false))
		ReportStartup(e, "app", "topaz", true)
		assert.Empty(t, tel.events)
	})
}

func TestRandIntnRange(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 1000; i++ {
		v := r.Intn(12)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 12)
	}
	assert.Zero(t, r.Intn(0))
	assert.Equal(t, NewRand(7).NextU64(), NewRand(7).NextU64())
}
