package system

import (
	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/gamemap"
)

// Octant multipliers for recursive shadowcasting. A sweep cell (col, row)
// maps to (cx + col*xx + row*xy, cy + col*yx + row*yy).
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// ComputeFOV clears visibility and marks every tile in sight of (x, y)
// within radius as visible and explored. With lightWalls false, opaque
// tiles bounding the view stay dark.
func ComputeFOV(gmap *gamemap.GameMap, x, y, radius int, lightWalls bool) {
	gmap.ClearVisible()
	if !gmap.InBounds(x, y) {
		return
	}
	sc := shadowcaster{gmap: gmap, cx: x, cy: y, radius: radius, lightWalls: lightWalls}
	sc.reveal(x, y)
	for _, m := range octants {
		sc.cast(1, 1.0, 0.0, m)
	}
}

// UpdateFOV recomputes the view from an entity's position, walls included.
func UpdateFOV(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, radius int) {
	pos, ok := ecs.Lookup[component.Position](w, id, component.CPosition)
	if !ok {
		gmap.ClearVisible()
		return
	}
	ComputeFOV(gmap, pos.X, pos.Y, radius, true)
}

type shadowcaster struct {
	gmap       *gamemap.GameMap
	cx, cy     int
	radius     int
	lightWalls bool
}

func (s *shadowcaster) reveal(x, y int) {
	t := s.gmap.At(x, y)
	t.Visible = true
	t.Explored = true
}

// cast scans one octant from row outwards between the start and end slopes.
func (s *shadowcaster) cast(row int, start, end float64, m [4]int) {
	if start < end {
		return
	}
	radiusSq := s.radius * s.radius
	newStart := start

	for j := row; j <= s.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := s.cx + dx*m[0] + dy*m[1]
			wy := s.cy + dx*m[2] + dy*m[3]
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			opaque := !s.gmap.IsTransparent(wx, wy)
			if dx*dx+dy*dy < radiusSq && s.gmap.InBounds(wx, wy) && (s.lightWalls || !opaque) {
				s.reveal(wx, wy)
			}

			switch {
			case blocked && opaque:
				newStart = rSlope
			case blocked:
				blocked = false
				start = newStart
			case opaque && j < s.radius:
				blocked = true
				s.cast(j+1, start, lSlope, m)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
