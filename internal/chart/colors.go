package chart

import (
	"fmt"
	"math"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance is the relative luminance in [0,1]. Lower is darker.
func (c RGB) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// Ramp is a sequential color scale ordered light to dark.
type Ramp []RGB

// Blues matches the sequential "Blues" scale, light to dark.
var Blues = Ramp{
	{247, 251, 255},
	{222, 235, 247},
	{198, 219, 239},
	{158, 202, 225},
	{107, 174, 214},
	{66, 146, 198},
	{33, 113, 181},
	{8, 81, 156},
	{8, 48, 107},
}

// At interpolates the ramp at t in [0,1]. Values outside are clamped.
func (r Ramp) At(t float64) RGB {
	if len(r) == 0 {
		return RGB{}
	}
	if math.IsNaN(t) || t <= 0 {
		return r[0]
	}
	if t >= 1 {
		return r[len(r)-1]
	}
	pos := t * float64(len(r)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := r[i], r[i+1]
	return RGB{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
	}
}

// Scale maps each value onto the ramp, min to the lightest and max to the
// darkest. Equal values get equal colors.
func (r Ramp) Scale(values []float64) []string {
	out := make([]string, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for i, v := range values {
		t := 1.0
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		out[i] = r.At(t).Hex()
	}
	return out
}

func lerp(a, b uint8, frac float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
}
