package gosieray

import "math"

// ColorRGB is a linear, unbounded color. It is tone mapped with MaxToOne
// before it is quantized for display.
type ColorRGB struct {
	R, G, B float64
}

var (
	Black   = ColorRGB{0, 0, 0}
	White   = ColorRGB{1, 1, 1}
	Red     = ColorRGB{1, 0, 0}
	Green   = ColorRGB{0, 1, 0}
	Blue    = ColorRGB{0, 0, 1}
	Yellow  = ColorRGB{1, 1, 0}
	Cyan    = ColorRGB{0, 1, 1}
	Magenta = ColorRGB{1, 0, 1}
	Gray    = ColorRGB{0.5, 0.5, 0.5}
)

func Grey(v float64) ColorRGB {
	return ColorRGB{v, v, v}
}

func (c ColorRGB) Add(o ColorRGB) ColorRGB {
	return ColorRGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul multiplies per channel.
func (c ColorRGB) Mul(o ColorRGB) ColorRGB {
	return ColorRGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c ColorRGB) Scale(s float64) ColorRGB {
	return ColorRGB{c.R * s, c.G * s, c.B * s}
}

func (c ColorRGB) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// MaxToOne scales the color down so that its largest channel is 1. Ratios
// between channels are kept; colors already inside [0,1] are unchanged.
func (c ColorRGB) MaxToOne() ColorRGB {
	maxValue := c.Max()
	if maxValue > 1 {
		return c.Scale(1 / maxValue)
	}
	return c
}

// RGB8 quantizes a tone mapped color to bytes.
func (c ColorRGB) RGB8() (uint8, uint8, uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	return uint8(clamp(v, 0, 1) * 255)
}
