// Package bead is the host side of a bead-grid game: the callback
// contract a game implements, the drawing/audio/timer/telemetry surface
// it calls, and an in-memory Engine that front ends render.
package bead

// All addresses every column or every row of the grid.
const All = -1

// MaxGridSize is the largest grid dimension the host supports.
const MaxGridSize = 32

// Key codes for keys without a printable character. Printable keys are
// reported as their ASCII code.
const (
	KeyArrowLeft  = 1005
	KeyArrowUp    = 1006
	KeyArrowRight = 1007
	KeyArrowDown  = 1008

	KeyEnter  = 13
	KeyEscape = 27
	KeyTab    = 9
	KeyDelete = 8
)

// Sensors carries input device state other than touches and keys.
type Sensors struct {
	Wheel int // +1 forward, -1 back
}

// Game is the set of callbacks the host drives. Data is the value last
// attached to the bead with SetData.
type Game interface {
	Init(h Host)
	Touch(x, y int, data any)
	Release(x, y int, data any)
	Enter(x, y int, data any)
	Exit(x, y int, data any)
	ExitGrid()
	KeyDown(key int, shift, ctrl bool)
	KeyUp(key int, shift, ctrl bool)
	Input(s Sensors)
	Shutdown()
}

// Handlers implements every Game callback as a no-op. Embed it and
// override what the game needs.
type Handlers struct{}

func (Handlers) Init(Host) {}
func (Handlers) Touch(int, int, any) {}
func (Handlers) Release(int, int, any) {}
func (Handlers) Enter(int, int, any) {}
func (Handlers) Exit(int, int, any) {}
func (Handlers) ExitGrid() {}
func (Handlers) KeyDown(int, bool, bool) {}
func (Handlers) KeyUp(int, bool, bool) {}
func (Handlers) Input(Sensors) {}
func (Handlers) Shutdown() {}

// PlayOption adjusts a single AudioPlay call.
type PlayOption func(*playSettings)

type playSettings struct {
	volume float64
}

// Volume sets playback volume in [0, 1].
func Volume(v float64) PlayOption {
	return func(p *playSettings) { p.volume = v }
}

// Host is the capability surface games call into.
type Host interface {
	GridSize(w, h int)
	Width() int
	Height() int
	InGrid(x, y int) bool
	GridColor(c Color)
	GridFade(ticks int)

	Color(x, y int, c Color)
	BeadColor(x, y int) Color
	Data(x, y int) any
	SetData(x, y int, v any)
	Glyph(x, y int, g rune)
	Border(x, y, width int)

	StatusText(s string)
	StatusColor(c Color)

	AudioLoad(name string) error
	AudioPlay(name string, opts ...PlayOption)

	TimerStart(ticks int, fn func()) TimerID
	TimerStop(id TimerID) error

	DBLogin(app, team string, active bool) (string, error)
	DBEvent(team, name string, fields ...any) error
	DBSend(team string, discard bool) (int, error)
}
