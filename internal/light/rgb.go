package light

import "math"

// RGB is a linear radiance triple. Channels are unbounded above zero.
type RGB struct {
	R, G, B float64
}

// White is unit radiance on every channel.
var White = RGB{1, 1, 1}

// Gray returns an RGB with all three channels set to v.
func Gray(v float64) RGB { return RGB{v, v, v} }

// Add returns the channel-wise sum.
func (c RGB) Add(o RGB) RGB { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }

// Mul returns the channel-wise product (colour filter).
func (c RGB) Mul(o RGB) RGB { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }

// Scale multiplies every channel by s.
func (c RGB) Scale(s float64) RGB { return RGB{c.R * s, c.G * s, c.B * s} }

// Max returns the channel-wise maximum.
func (c RGB) Max(o RGB) RGB {
	return RGB{math.Max(c.R, o.R), math.Max(c.G, o.G), math.Max(c.B, o.B)}
}

// Min returns the channel-wise minimum.
func (c RGB) Min(o RGB) RGB {
	return RGB{math.Min(c.R, o.R), math.Min(c.G, o.G), math.Min(c.B, o.B)}
}

// MaxChannel returns the brightest of the three channels.
func (c RGB) MaxChannel() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// IsZero reports whether every channel is exactly zero.
func (c RGB) IsZero() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// Below reports whether every channel is strictly below floor.
func (c RGB) Below(floor float64) bool {
	return c.R < floor && c.G < floor && c.B < floor
}

// Vec is a sub-tile position or offset in map space.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v*s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Polar returns the unit vector pointing at deg degrees. Angles grow
// clockwise on screen: 0 is east, 90 is south.
func Polar(deg float64) Vec {
	rad := deg * math.Pi / 180
	return Vec{math.Cos(rad), math.Sin(rad)}
}

// Rotate returns the offset turned to point at deg, keeping its magnitude.
// An offset of (0.3, 0) rotated to 90 becomes (0, 0.3).
func (v Vec) Rotate(deg float64) Vec {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// NormalizeDeg maps any angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// AngleDiff returns the absolute angular distance between a and b in [0, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Abs(NormalizeDeg(a) - NormalizeDeg(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
