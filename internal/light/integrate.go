package light

import "image"

// Integrator sums emitter fields into one map-wide irradiance grid.
// The accumulator is reused between frames.
type Integrator struct {
	acc *Field
}

// NewIntegrator returns an integrator for a width x height map.
func NewIntegrator(width, height int) *Integrator {
	return &Integrator{acc: NewField(image.Rect(0, 0, width, height))}
}

// Sum zeroes the accumulator and adds every field at its offset. Cells
// outside the map are dropped. Contributions add, they do not max-blend.
func (in *Integrator) Sum(fields []*Field) *Field {
	in.acc.Reset()
	for _, f := range fields {
		if f == nil {
			continue
		}
		f.AddTo(in.acc)
	}
	return in.acc
}

// Irradiance returns the most recent sum.
func (in *Integrator) Irradiance() *Field { return in.acc }
