package bead

import (
	"errors"

	"github.com/kamstrup/intmap"
)

// TicksPerSecond is the host timer resolution.
const TicksPerSecond = 60

// ErrUnknownTimer is returned when stopping a timer that is not running.
var ErrUnknownTimer = errors.New("unknown timer")

// TimerID identifies a running timer. The zero value is never issued.
type TimerID int

type timer struct {
	period    int
	remaining int
	fn        func()
}

type timerSet struct {
	next   TimerID
	active *intmap.Map[TimerID, *timer]
	order  []TimerID
}

func newTimerSet() *timerSet {
	return &timerSet{
		active: intmap.New[TimerID, *timer](8),
	}
}

func (ts *timerSet) start(ticks int, fn func()) TimerID {
	if ticks < 1 {
		ticks = 1
	}
	ts.next++
	id := ts.next
	ts.active.Put(id, &timer{period: ticks, remaining: ticks, fn: fn})
	ts.order = append(ts.order, id)
	return id
}

func (ts *timerSet) stop(id TimerID) error {
	if !ts.active.Del(id) {
		return ErrUnknownTimer
	}
	return nil
}

func (ts *timerSet) len() int {
	return ts.active.Len()
}

func (ts *timerSet) clear() {
	ts.active.Clear()
	ts.order = ts.order[:0]
}

// tick fires every timer that is due. Timers started from a callback
// first run one full period later.
func (ts *timerSet) tick() {
	snapshot := append([]TimerID(nil), ts.order...)
	for _, id := range snapshot {
		t, ok := ts.active.Get(id)
		if !ok {
			continue
		}
		t.remaining--
		if t.remaining > 0 {
			continue
		}
		t.remaining = t.period
		t.fn()
	}

	live := ts.order[:0]
	for _, id := range ts.order {
		if _, ok := ts.active.Get(id); ok {
			live = append(live, id)
		}
	}
	ts.order = live
}
