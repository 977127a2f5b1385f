//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"beads/internal/bead"
	"beads/internal/desktop/layout"
)

var specialKeys = map[glfw.Key]int{
	glfw.KeyLeft:      bead.KeyArrowLeft,
	glfw.KeyUp:        bead.KeyArrowUp,
	glfw.KeyRight:     bead.KeyArrowRight,
	glfw.KeyDown:      bead.KeyArrowDown,
	glfw.KeyEnter:     bead.KeyEnter,
	glfw.KeyKPEnter:   bead.KeyEnter,
	glfw.KeyEscape:    bead.KeyEscape,
	glfw.KeyTab:       bead.KeyTab,
	glfw.KeyBackspace: bead.KeyDelete,
}

// keyCode maps a GLFW key to the host's key code. Letters are lower case
// unless shift is held; other printable keys keep their ASCII code.
func keyCode(key glfw.Key, shift bool) (int, bool) {
	if code, ok := specialKeys[key]; ok {
		return code, true
	}
	if key >= glfw.KeyA && key <= glfw.KeyZ {
		if shift {
			return int(key), true
		}
		return int(key) + ('a' - 'A'), true
	}
	if key >= glfw.KeySpace && key <= glfw.KeyGraveAccent {
		return int(key), true
	}
	return 0, false
}

// Input forwards GLFW callbacks to the engine.
type Input struct {
	engine   *bead.Engine
	beadSize int
	pressed  bool
}

func NewInput(engine *bead.Engine, beadSize int) *Input {
	return &Input{engine: engine, beadSize: beadSize}
}

// Attach installs the window callbacks.
func (in *Input) Attach(window *glfw.Window) {
	window.SetKeyCallback(in.onKey)
	window.SetMouseButtonCallback(in.onMouseButton)
	window.SetCursorPosCallback(in.onCursor)
	window.SetCursorEnterCallback(in.onCursorEnter)
	window.SetScrollCallback(in.onScroll)
}

func (in *Input) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	shift := mods&glfw.ModShift != 0
	ctrl := mods&glfw.ModControl != 0
	code, ok := keyCode(key, shift)
	if !ok {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		in.engine.KeyDown(code, shift, ctrl)
	case glfw.Release:
		in.engine.KeyUp(code, shift, ctrl)
	}
}

func (in *Input) onMouseButton(window *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if btn != glfw.MouseButtonLeft {
		return
	}
	x, y := in.cursorBead(window)
	switch action {
	case glfw.Press:
		in.pressed = true
		in.engine.Touch(x, y)
	case glfw.Release:
		if in.pressed {
			in.pressed = false
			in.engine.Release(x, y)
		}
	}
}

func (in *Input) onCursor(window *glfw.Window, _, _ float64) {
	x, y := in.cursorBead(window)
	in.engine.MoveCursor(x, y)
}

func (in *Input) onCursorEnter(_ *glfw.Window, entered bool) {
	if !entered {
		in.engine.MoveCursor(-1, -1)
	}
}

func (in *Input) onScroll(_ *glfw.Window, _, yoff float64) {
	switch {
	case yoff > 0:
		in.engine.Wheel(1)
	case yoff < 0:
		in.engine.Wheel(-1)
	}
}

func (in *Input) cursorBead(window *glfw.Window) (int, int) {
	cx, cy := window.GetCursorPos()
	return layout.BeadAt(cx, cy, in.beadSize)
}
