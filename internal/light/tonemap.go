package light

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// curveExponent shapes the response a·exp(b·x)+c. With c = -a and
// a = 1/(exp(b)-1) the curve passes through (0,0) and (1,1) and is concave.
const curveExponent = -2.5

// ToneMapper converts linear tile radiance into display colour.
type ToneMapper struct {
	ambient  RGB
	fraction float64
	minimum  float64

	a, b, c float64
}

// NewToneMapper builds a mapper from the ambient settings of cfg.
func NewToneMapper(cfg Config) ToneMapper {
	a := 1 / (math.Exp(curveExponent) - 1)
	return ToneMapper{
		ambient:  cfg.Ambient,
		fraction: cfg.ExploredFraction,
		minimum:  cfg.ExploredMinimum,
		a:        a,
		b:        curveExponent,
		c:        -a,
	}
}

// Curve applies the response curve to one non-negative channel.
func (t ToneMapper) Curve(v float64) float64 {
	return t.a*math.Exp(t.b*math.Max(0, v)) + t.c
}

// Correct runs the curve per channel, then divides every channel by the
// largest one if it overflows 1, keeping the hue instead of clipping.
func (t ToneMapper) Correct(linear RGB) RGB {
	c := RGB{t.Curve(linear.R), t.Curve(linear.G), t.Curve(linear.B)}
	if m := c.MaxChannel(); m > 1 {
		c = RGB{c.R / m, c.G / m, c.B / m}
	}
	return c
}

// Visible colours a tile in view: base tinted by irradiance plus ambient.
func (t ToneMapper) Visible(base, irradiance RGB) colorful.Color {
	return display(t.Correct(base.Mul(irradiance.Add(t.ambient))))
}

// Remembered colours an explored tile that is out of view.
func (t ToneMapper) Remembered(base RGB) colorful.Color {
	level := t.ambient.Scale(t.fraction).Max(Gray(t.minimum))
	return display(t.Correct(base.Mul(level)))
}

func display(c RGB) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}
