package light

import (
	"image"
	"math"
)

// trace marches one ray and appends any collision candidates to out.
func (e *Engine) trace(m Map, em Emission, field *Field, delta Vec, heading float64, out []Reflection) []Reflection {
	length := delta.Len()
	step := delta.Scale(e.cfg.RaycastStep / length)
	steps := int(length / e.cfg.RaycastStep)

	parent := em.Intensity
	pos := em.Origin
	prev := tileOf(pos)
	for i := 0; i <= steps; i++ {
		travelled := float64(i) * e.cfg.RaycastStep
		bright := parent.Scale(e.tables.Falloff(math.Max(1, travelled), em.Collimation)).Min(parent)
		if bright.Below(e.cfg.BrightnessFloor) {
			return out
		}
		tile := tileOf(pos)
		if !field.Contains(tile.X, tile.Y) {
			return out
		}
		s := m.Surface(tile.X, tile.Y)
		switch {
		case s.BlocksSight && tile == em.Housing:
			// An emitter inside an opaque tile does not light its housing.
		case s.BlocksSight:
			field.Blend(tile.X, tile.Y, bright)
			face := CollisionFace(m, tile, pos, step)
			return append(out, e.bounce(em, tile, face, heading, bright, s)...)
		case s.Blocked:
			field.Blend(tile.X, tile.Y, bright)
			if tile != prev && tile != em.Housing {
				if s.Reflectivity > 0 {
					face := CollisionFace(m, tile, pos, step)
					out = e.appendSpecular(out, em, tile, face, heading, bright.Mul(s.Color).Scale(s.Reflectivity))
				}
				parent = parent.Mul(s.Color).Scale(1 - s.Reflectivity)
			}
		default:
			field.Blend(tile.X, tile.Y, bright)
		}
		prev = tile
		pos = pos.Add(step)
	}
	return out
}

// bounce proposes the diffuse and specular children of an opaque hit.
func (e *Engine) bounce(em Emission, tile image.Point, face Face, heading float64, bright RGB, s Surface) []Reflection {
	var out []Reflection
	if s.Reflectivity < 1 {
		c := bright.Mul(s.Color).Scale(1 - s.Reflectivity)
		if !c.Below(e.cfg.BrightnessFloor) {
			out = append(out, Reflection{
				Diffuse:     true,
				Tile:        tile,
				Face:        face,
				Direction:   face.Normal(),
				Intensity:   c,
				Sweep:       e.cfg.DiffuseSweep,
				Collimation: e.cfg.DiffuseCollimation,
			})
		}
	}
	if s.Reflectivity > 0 {
		out = e.appendSpecular(out, em, tile, face, heading, bright.Mul(s.Color).Scale(s.Reflectivity))
	}
	return out
}

func (e *Engine) appendSpecular(out []Reflection, em Emission, tile image.Point, face Face, heading float64, c RGB) []Reflection {
	if c.Below(e.cfg.BrightnessFloor) {
		return out
	}
	return append(out, Reflection{
		Tile:        tile,
		Face:        face,
		Direction:   Mirror(heading, face),
		Intensity:   c,
		Sweep:       em.Sweep,
		Collimation: em.Collimation,
	})
}

// perimeter returns ray targets spaced 1/fineness apart along the edges of
// r, corners included exactly once.
func perimeter(r image.Rectangle, fineness float64) []Vec {
	x0, y0 := float64(r.Min.X), float64(r.Min.Y)
	x1, y1 := float64(r.Max.X), float64(r.Max.Y)
	nx := int(math.Ceil(float64(r.Dx()) * fineness))
	ny := int(math.Ceil(float64(r.Dy()) * fineness))

	targets := make([]Vec, 0, 4+2*(nx-1)+2*(ny-1))
	targets = append(targets, Vec{x0, y0}, Vec{x1, y0}, Vec{x1, y1}, Vec{x0, y1})
	for i := 1; i < nx; i++ {
		x := x0 + (x1-x0)*float64(i)/float64(nx)
		targets = append(targets, Vec{x, y0}, Vec{x, y1})
	}
	for j := 1; j < ny; j++ {
		y := y0 + (y1-y0)*float64(j)/float64(ny)
		targets = append(targets, Vec{x0, y}, Vec{x1, y})
	}
	return targets
}

func tileOf(v Vec) image.Point {
	return image.Pt(int(math.Floor(v.X)), int(math.Floor(v.Y)))
}
