package light

import (
	"image"
	"math"
)

// Reflection is a candidate child light source proposed at a ray collision.
type Reflection struct {
	Diffuse     bool
	Tile        image.Point // struck tile
	Face        Face
	Direction   float64
	Intensity   RGB
	Sweep       float64
	Collimation float64
}

// Emission turns the reflection into a light source sitting just outside
// the struck face. The struck tile is its housing.
func (r Reflection) Emission(epsilon float64) Emission {
	centre := Vec{float64(r.Tile.X) + 0.5, float64(r.Tile.Y) + 0.5}
	return Emission{
		Origin:      centre.Add(Polar(r.Face.Normal()).Scale(0.5 + epsilon)),
		Housing:     r.Tile,
		Direction:   r.Direction,
		Intensity:   r.Intensity,
		Sweep:       r.Sweep,
		Collimation: r.Collimation,
		Face:        r.Face,
	}
}

// Mirror reflects a travel direction off a face. East and west faces flip
// the horizontal component, north and south faces the vertical one.
func Mirror(heading float64, f Face) float64 {
	switch f {
	case FaceEast, FaceWest:
		return NormalizeDeg(180 - heading)
	default:
		return NormalizeDeg(360 - heading)
	}
}

// CollisionFace classifies which edge of tile a ray at pos, moving by step,
// entered through. Of the edges the ray approaches, faces backed by a
// non-opaque neighbour win; ties go to the edge crossed most recently.
func CollisionFace(m Map, tile image.Point, pos, step Vec) Face {
	fx := pos.X - float64(tile.X)
	fy := pos.Y - float64(tile.Y)

	var (
		faces [2]Face
		since [2]float64 // steps elapsed since crossing the edge
		n     int
	)
	switch {
	case step.X > 0:
		faces[n], since[n] = FaceWest, fx/step.X
		n++
	case step.X < 0:
		faces[n], since[n] = FaceEast, (1-fx)/-step.X
		n++
	}
	switch {
	case step.Y > 0:
		faces[n], since[n] = FaceNorth, fy/step.Y
		n++
	case step.Y < 0:
		faces[n], since[n] = FaceSouth, (1-fy)/-step.Y
		n++
	}
	if n == 0 {
		return FaceWest
	}

	best := 0
	for i := 1; i < n; i++ {
		oi, ob := openBeyond(m, tile, faces[i]), openBeyond(m, tile, faces[best])
		if oi != ob {
			if oi {
				best = i
			}
			continue
		}
		if since[i] < since[best] {
			best = i
		}
	}
	return faces[best]
}

func openBeyond(m Map, tile image.Point, f Face) bool {
	n := f.Neighbor(tile)
	w, h := m.Size()
	if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h {
		return false
	}
	return !m.Surface(n.X, n.Y).BlocksSight
}

type reflectionKey struct {
	diffuse   bool
	tile      image.Point
	face      Face
	direction float64
}

// Filter merges candidates that share a location. Diffuse candidates group
// by tile, face and direction; specular ones by tile and face. Intensities
// are averaged; specular groups also average sweep and collimation and take
// the circular mean of their directions. Output order follows first sight.
func Filter(candidates []Reflection) []Reflection {
	type group struct {
		r        Reflection
		n        int
		sum      RGB
		sweep    float64
		coll     float64
		sin, cos float64
	}
	index := make(map[reflectionKey]int, len(candidates))
	var groups []group
	for _, c := range candidates {
		k := reflectionKey{diffuse: c.Diffuse, tile: c.Tile, face: c.Face}
		if c.Diffuse {
			k.direction = c.Direction
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{r: c})
		}
		g := &groups[i]
		g.n++
		g.sum = g.sum.Add(c.Intensity)
		g.sweep += c.Sweep
		g.coll += c.Collimation
		s, co := math.Sincos(c.Direction * math.Pi / 180)
		g.sin += s
		g.cos += co
	}

	out := make([]Reflection, 0, len(groups))
	for _, g := range groups {
		r := g.r
		n := float64(g.n)
		r.Intensity = g.sum.Scale(1 / n)
		if !r.Diffuse {
			r.Sweep = g.sweep / n
			r.Collimation = g.coll / n
			r.Direction = circularMean(g.sin, g.cos, r.Face.Normal())
		}
		out = append(out, r)
	}
	return out
}

// circularMean returns the mean direction of summed unit vectors, or
// fallback when they cancel out.
func circularMean(sin, cos, fallback float64) float64 {
	if math.Hypot(sin, cos) < 1e-9 {
		return fallback
	}
	return NormalizeDeg(math.Atan2(sin, cos) * 180 / math.Pi)
}
