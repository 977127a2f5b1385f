package bead

import (
	"context"
	"fmt"
	"log"
)

// DefaultVolume is used by AudioPlay when no Volume option is given.
const DefaultVolume = 0.5

type beadState struct {
	color  Color
	data   any
	glyph  rune
	border int
}

func defaultBead() beadState {
	return beadState{color: White, data: 0, border: 1}
}

// Engine holds the grid, status line, timers and telemetry binding for
// one running game and dispatches input to it. It is not safe for
// concurrent use; front ends call it from their main loop.
type Engine struct {
	ctx context.Context

	width, height int
	beads         []beadState

	gridColor   Color
	fadeFrom    Color
	fadeTicks   int
	fadeStarted int

	status      string
	statusColor Color

	game     Game
	cursorX  int
	cursorY  int
	cursorIn bool

	now    int
	timers *timerSet
	bus    *EventBus

	soundCheck func(string) error
	loaded     map[string]bool

	telemetry      Telemetry
	user           string
	forceTelemetry bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithContext sets the context used for telemetry calls.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) { e.ctx = ctx }
}

// WithSoundCheck installs the validator AudioLoad and AudioPlay use to
// reject unknown sound names.
func WithSoundCheck(fn func(name string) error) Option {
	return func(e *Engine) { e.soundCheck = fn }
}

// WithTelemetry attaches a telemetry store and the user name reported at
// login. With force set, DBLogin ignores the game's active flag.
func WithTelemetry(t Telemetry, user string, force bool) Option {
	return func(e *Engine) {
		e.telemetry = t
		e.user = user
		e.forceTelemetry = force
	}
}

// NewEngine returns an engine with the default 8x8 grid.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		ctx:         context.Background(),
		gridColor:   White,
		fadeFrom:    White,
		statusColor: Black,
		timers:      newTimerSet(),
		bus:         NewEventBus(),
		loaded:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.GridSize(8, 8)
	return e
}

// Events returns the bus the engine publishes sound, status, resize and
// telemetry events on.
func (e *Engine) Events() *EventBus { return e.bus }

// Start binds the game and runs its Init callback.
func (e *Engine) Start(g Game) {
	e.timers.clear()
	e.cursorIn = false
	e.game = g
	g.Init(e)
}

// Tick advances host time by one tick and fires due timers.
func (e *Engine) Tick() {
	e.now++
	e.timers.tick()
}

// Now returns the number of ticks since the engine was created.
func (e *Engine) Now() int { return e.now }

// ActiveTimers reports how many timers are running.
func (e *Engine) ActiveTimers() int { return e.timers.len() }

// ---- Dispatch -------------------------------------------------------------

func (e *Engine) Touch(x, y int) {
	if e.game == nil || !e.InGrid(x, y) {
		return
	}
	e.game.Touch(x, y, e.Data(x, y))
}

func (e *Engine) Release(x, y int) {
	if e.game == nil || !e.InGrid(x, y) {
		return
	}
	e.game.Release(x, y, e.Data(x, y))
}

// MoveCursor reports the pointer position in bead coordinates. It emits
// Exit for the bead being left, Enter for the bead being entered, and
// ExitGrid when the pointer leaves the grid.
func (e *Engine) MoveCursor(x, y int) {
	if e.game == nil {
		return
	}
	in := e.InGrid(x, y)
	if e.cursorIn && in && x == e.cursorX && y == e.cursorY {
		return
	}
	if e.cursorIn {
		e.game.Exit(e.cursorX, e.cursorY, e.Data(e.cursorX, e.cursorY))
	}
	if !in {
		if e.cursorIn {
			e.cursorIn = false
			e.game.ExitGrid()
		}
		return
	}
	e.cursorX, e.cursorY, e.cursorIn = x, y, true
	e.game.Enter(x, y, e.Data(x, y))
}

func (e *Engine) KeyDown(key int, shift, ctrl bool) {
	if e.game != nil {
		e.game.KeyDown(key, shift, ctrl)
	}
}

func (e *Engine) KeyUp(key int, shift, ctrl bool) {
	if e.game != nil {
		e.game.KeyUp(key, shift, ctrl)
	}
}

func (e *Engine) Wheel(delta int) {
	if e.game != nil && delta != 0 {
		e.game.Input(Sensors{Wheel: delta})
	}
}

// Shutdown runs the game's Shutdown callback and stops all timers.
func (e *Engine) Shutdown() {
	if e.game != nil {
		e.game.Shutdown()
	}
	e.timers.clear()
}

// ---- Grid -----------------------------------------------------------------

// GridSize resizes the grid, clamping each dimension to 1..MaxGridSize,
// and resets every bead.
func (e *Engine) GridSize(w, h int) {
	w = clamp(w, 1, MaxGridSize)
	h = clamp(h, 1, MaxGridSize)
	e.width, e.height = w, h
	e.beads = make([]beadState, w*h)
	for i := range e.beads {
		e.beads[i] = defaultBead()
	}
	e.cursorIn = false
	e.bus.Emit(Event{Type: EventGridResized, X: w, Y: h})
}

func (e *Engine) Width() int  { return e.width }
func (e *Engine) Height() int { return e.height }

func (e *Engine) InGrid(x, y int) bool {
	return x >= 0 && x < e.width && y >= 0 && y < e.height
}

// GridColor sets the background colour, fading from the current
// displayed colour when a fade is set.
func (e *Engine) GridColor(c Color) {
	e.fadeFrom = e.displayedGridColor()
	e.fadeStarted = e.now
	e.gridColor = c
}

// GridFade sets the grid colour fade duration in ticks. 0 disables it.
func (e *Engine) GridFade(ticks int) {
	if ticks < 0 {
		ticks = 0
	}
	e.fadeFrom = e.displayedGridColor()
	e.gridColor = e.fadeFrom
	e.fadeStarted = e.now
	e.fadeTicks = ticks
}

func (e *Engine) displayedGridColor() Color {
	if e.fadeTicks == 0 {
		return e.gridColor
	}
	t := float64(e.now-e.fadeStarted) / float64(e.fadeTicks)
	return lerpColor(e.fadeFrom, e.gridColor, t)
}

// each calls fn for every bead addressed by (x, y), where either may be All.
func (e *Engine) each(x, y int, fn func(b *beadState)) {
	x0, x1 := x, x
	y0, y1 := y, y
	if x == All {
		x0, x1 = 0, e.width-1
	}
	if y == All {
		y0, y1 = 0, e.height-1
	}
	for by := y0; by <= y1; by++ {
		for bx := x0; bx <= x1; bx++ {
			if !e.InGrid(bx, by) {
				continue
			}
			fn(&e.beads[by*e.width+bx])
		}
	}
}

func (e *Engine) at(x, y int) (beadState, bool) {
	if !e.InGrid(x, y) {
		return beadState{}, false
	}
	return e.beads[y*e.width+x], true
}

func (e *Engine) Color(x, y int, c Color) {
	e.each(x, y, func(b *beadState) { b.color = c })
}

func (e *Engine) BeadColor(x, y int) Color {
	b, _ := e.at(x, y)
	return b.color
}

// Data returns the value attached to a bead, or nil off-grid.
func (e *Engine) Data(x, y int) any {
	b, _ := e.at(x, y)
	return b.data
}

func (e *Engine) SetData(x, y int, v any) {
	e.each(x, y, func(b *beadState) { b.data = v })
}

// Glyph sets the bead's glyph. 0 clears it.
func (e *Engine) Glyph(x, y int, g rune) {
	e.each(x, y, func(b *beadState) { b.glyph = g })
}

func (e *Engine) BeadGlyph(x, y int) rune {
	b, _ := e.at(x, y)
	return b.glyph
}

func (e *Engine) Border(x, y, width int) {
	if width < 0 {
		width = 0
	}
	e.each(x, y, func(b *beadState) { b.border = width })
}

// ---- Status line ----------------------------------------------------------

func (e *Engine) StatusText(s string) {
	e.status = s
	e.bus.Emit(Event{Type: EventStatus, Text: s})
}

func (e *Engine) Status() string { return e.status }

func (e *Engine) StatusColor(c Color) { e.statusColor = c }

// ---- Audio ----------------------------------------------------------------

// AudioLoad validates and preloads a sound.
func (e *Engine) AudioLoad(name string) error {
	if e.soundCheck != nil {
		if err := e.soundCheck(name); err != nil {
			return fmt.Errorf("audio load %q: %w", name, err)
		}
	}
	e.loaded[name] = true
	return nil
}

// AudioPlay publishes a sound event. Unknown names are logged and dropped.
func (e *Engine) AudioPlay(name string, opts ...PlayOption) {
	settings := playSettings{volume: DefaultVolume}
	for _, opt := range opts {
		opt(&settings)
	}
	if !e.loaded[name] {
		if err := e.AudioLoad(name); err != nil {
			log.Printf("audio play: %v", err)
			return
		}
	}
	e.bus.Emit(Event{Type: EventSound, Name: name, Volume: clampF(settings.volume, 0, 1)})
}

// ---- Timers ---------------------------------------------------------------

// TimerStart calls fn every ticks host ticks until stopped.
func (e *Engine) TimerStart(ticks int, fn func()) TimerID {
	return e.timers.start(ticks, fn)
}

func (e *Engine) TimerStop(id TimerID) error {
	if err := e.timers.stop(id); err != nil {
		return fmt.Errorf("timer %d: %w", id, err)
	}
	return nil
}

// ---- Snapshot -------------------------------------------------------------

// BeadView is the render state of one bead.
type BeadView struct {
	Color  Color
	Glyph  rune
	Border int
}

// Frame is a copy of everything a front end draws.
type Frame struct {
	Width, Height int
	Beads         []BeadView // row-major
	GridColor     Color
	Status        string
	StatusColor   Color
}

// Snapshot copies the current render state.
func (e *Engine) Snapshot() Frame {
	f := Frame{
		Width:       e.width,
		Height:      e.height,
		Beads:       make([]BeadView, len(e.beads)),
		GridColor:   e.displayedGridColor(),
		Status:      e.status,
		StatusColor: e.statusColor,
	}
	for i, b := range e.beads {
		f.Beads[i] = BeadView{Color: b.color, Glyph: b.glyph, Border: b.border}
	}
	return f
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
