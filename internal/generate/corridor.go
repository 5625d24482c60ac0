package generate

import (
	"math/rand"

	"lightcaster/internal/gamemap"
)

// carveCorridor digs a tunnel of the given style between (x1,y1) and (x2,y2).
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, style CorridorStyle, rng *rand.Rand) {
	switch style {
	case CorridorZShaped:
		mid := (y1 + y2) / 2
		carveV(gmap, y1, mid, x1)
		carveH(gmap, x1, x2, mid)
		carveV(gmap, mid, y2, x2)
	case CorridorStraight:
		carveH(gmap, x1, x2, y1)
		carveV(gmap, y1, y2, x2)
	default:
		if rng.Intn(2) == 0 {
			carveH(gmap, x1, x2, y1)
			carveV(gmap, y1, y2, x2)
		} else {
			carveV(gmap, y1, y2, x1)
			carveH(gmap, x1, x2, y2)
		}
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		dig(gmap, x, y)
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		dig(gmap, x, y)
	}
}

// dig turns (x, y) into floor, leaving the outer border solid.
func dig(gmap *gamemap.GameMap, x, y int) {
	if x < 1 || y < 1 || x >= gmap.Width-1 || y >= gmap.Height-1 {
		return
	}
	gmap.Set(x, y, gamemap.MakeFloor())
}
