package bead

// Color is an 8-bit per channel bead colour.
type Color struct {
	R, G, B uint8
}

// Hex builds a Color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Hex returns the colour as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Floats returns the colour as normalized GL components.
func (c Color) Floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// Named host colours.
var (
	Black     = Hex(0x000000)
	White     = Hex(0xFFFFFF)
	GrayLight = Hex(0xC0C0C0)
	Gray      = Hex(0x808080)
	GrayDark  = Hex(0x404040)
	Red       = Hex(0xFF0000)
	Orange    = Hex(0xFF8000)
	Yellow    = Hex(0xFFFF00)
	Green     = Hex(0x00FF00)
	Blue      = Hex(0x0000FF)
	Indigo    = Hex(0x4000FF)
	Violet    = Hex(0x8000FF)
	Magenta   = Hex(0xFF00FF)
	Cyan      = Hex(0x00FFFF)
)

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func lerpColor(a, b Color, t float64) Color {
	return Color{R: lerpU8(a.R, b.R, t), G: lerpU8(a.G, b.G, t), B: lerpU8(a.B, b.B, t)}
}
