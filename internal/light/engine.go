package light

import (
	"fmt"
	"image"
	"math"
)

// Engine raycasts emissions against a Map.
type Engine struct {
	cfg    Config
	tables *Tables
}

// NewEngine validates cfg and binds it to tables.
func NewEngine(cfg Config, tables *Tables) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("light config: %w", err)
	}
	if tables == nil {
		return nil, fmt.Errorf("light tables are nil")
	}
	return &Engine{cfg: cfg, tables: tables}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Pass is the output of one raycast of a single emission.
type Pass struct {
	Field      *Field
	Candidates []Reflection // unfiltered
	Rays       int
}

// Result is an emitter's complete light including its reflection cascade.
type Result struct {
	Field       *Field
	Rays        int
	Reflections []int // filtered bounce sources cast at each level
}

// Compute raycasts em and then up to ReflectionLevel generations of bounces,
// breadth first. Every level consumes only the previous level's candidates.
// An emitter housed in an opaque tile never lights that tile, bounces
// included.
func (e *Engine) Compute(m Map, em Emission) Result {
	first := e.Cast(m, em)
	res := Result{Rays: first.Rays}
	fields := []*Field{first.Field}

	pending := first.Candidates
	for level := 0; level < e.cfg.ReflectionLevel && len(pending) > 0; level++ {
		sources := Filter(pending)
		res.Reflections = append(res.Reflections, len(sources))
		pending = nil
		for _, r := range sources {
			p := e.Cast(m, r.Emission(e.cfg.FaceEpsilon))
			res.Rays += p.Rays
			fields = append(fields, p.Field)
			pending = append(pending, p.Candidates...)
		}
	}

	res.Field = merge(fields)
	// Bounced light does not reach back into an opaque housing either.
	h := em.Housing
	if res.Field.Contains(h.X, h.Y) && m.Surface(h.X, h.Y).BlocksSight {
		res.Field.Set(h.X, h.Y, RGB{})
	}
	return res
}

// merge sums fields into one covering their union.
func merge(fields []*Field) *Field {
	if len(fields) == 1 {
		return fields[0]
	}
	var bounds image.Rectangle
	for _, f := range fields {
		bounds = bounds.Union(f.Bounds)
	}
	out := NewField(bounds)
	for _, f := range fields {
		f.AddTo(out)
	}
	return out
}

// Bounds returns the field rectangle an emission will light: a square of
// the table-derived radius around the origin tile, clipped to the map.
func (e *Engine) Bounds(m Map, em Emission) image.Rectangle {
	w, h := m.Size()
	centre := tileOf(em.Origin)
	peak := em.Intensity.MaxChannel()
	if peak < e.cfg.BrightnessFloor {
		return image.Rectangle{Min: centre, Max: centre.Add(image.Pt(1, 1))}
	}
	r := int(math.Ceil(e.tables.Reach(e.cfg.BrightnessFloor/peak, em.Collimation)))
	box := image.Rect(centre.X-r, centre.Y-r, centre.X+r+1, centre.Y+r+1)
	return box.Intersect(image.Rect(0, 0, w, h))
}

// Cast fires rays from em towards the perimeter of its field.
func (e *Engine) Cast(m Map, em Emission) Pass {
	bounds := e.Bounds(m, em)
	if bounds.Empty() || em.Intensity.MaxChannel() < e.cfg.BrightnessFloor {
		c := tileOf(em.Origin)
		return Pass{Field: Placeholder(c.X, c.Y)}
	}
	p := Pass{Field: NewField(bounds)}
	for _, target := range perimeter(bounds, e.cfg.RaycastFineness) {
		delta := target.Sub(em.Origin)
		if delta.Len() == 0 {
			continue
		}
		heading := e.tables.Atan2Deg(delta.Y, delta.X)
		if !e.inCone(em, heading) {
			continue
		}
		p.Rays++
		p.Candidates = e.trace(m, em, p.Field, delta, heading, p.Candidates)
	}
	return p
}

func (e *Engine) inCone(em Emission, heading float64) bool {
	if em.Face != FaceNone && AngleDiff(heading, em.Face.Normal()) >= 90 {
		return false
	}
	alpha := NormalizeDeg(heading - em.Direction)
	return alpha <= em.Sweep || alpha >= 360-em.Sweep
}
