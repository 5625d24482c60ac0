// Package generate carves a BSP dungeon and dresses it with the surfaces
// the lighting engine reacts to: mirrors, tinted glass and wall lamps.
package generate

import (
	"lightcaster/internal/gamemap"
	"lightcaster/internal/light"
)

// Lamp is a light source mounted inside a wall tile, facing into a room.
type Lamp struct {
	X, Y   int
	Facing float64
	Color  light.RGB
}

// Level is a generated map plus where things start.
type Level struct {
	Map              *gamemap.GameMap
	StartX, StartY   int
	BearerX, BearerY int // lantern bearer spawn; -1 when there is no room for one
	Lamps            []Lamp
}

// Palette of lamp colours and glass tints.
var (
	lampColors = []light.RGB{
		{R: 1, G: 0.85, B: 0.6},
		{R: 0.6, G: 0.8, B: 1},
		{R: 1, G: 0.4, B: 0.3},
		{R: 0.5, G: 1, B: 0.6},
	}
	glassTints = []light.RGB{
		{R: 1, G: 0.3, B: 0.3},
		{R: 0.3, G: 1, B: 0.4},
		{R: 0.35, G: 0.45, B: 1},
		{R: 1, G: 0.9, B: 0.3},
	}
)

// Generate builds a level. The player starts in the centre of the first
// room; the first room is never dressed so the start is always open.
func Generate(cfg *Config) *Level {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	root := &leaf{w: cfg.MapWidth, h: cfg.MapHeight}
	partition(root, cfg)
	root.carveRooms(gmap, cfg)
	root.link(gmap, cfg)

	lvl := &Level{Map: gmap, StartX: 1, StartY: 1, BearerX: -1, BearerY: -1}
	if len(gmap.Rooms) == 0 {
		gmap.Set(1, 1, gamemap.MakeFloor())
		return lvl
	}
	first := gmap.Rooms[0]
	lvl.StartX, lvl.StartY = first.Center()
	if first.X2 > lvl.StartX+1 {
		lvl.BearerX, lvl.BearerY = lvl.StartX+2, lvl.StartY
	} else if first.X1 < lvl.StartX {
		lvl.BearerX, lvl.BearerY = lvl.StartX-1, lvl.StartY
	}

	for _, room := range gmap.Rooms[1:] {
		if cfg.Rand.Float64() < cfg.MirrorChance {
			placeMirror(gmap, room, cfg)
		}
		if cfg.Rand.Float64() < cfg.GlassChance {
			placeGlass(gmap, room, cfg)
		}
	}
	taken := make(map[[2]int]bool)
	for i := 0; i < cfg.LampCount; i++ {
		if lamp, ok := placeLamp(gmap, cfg, taken); ok {
			taken[[2]int{lamp.X, lamp.Y}] = true
			lvl.Lamps = append(lvl.Lamps, lamp)
		}
	}
	return lvl
}

// wallSide describes one side of a room: the wall row or column just
// outside it and the direction that faces into the room.
type wallSide struct {
	horizontal bool // wall runs along x
	fixed      int  // y of a horizontal side, x of a vertical one
	from, to   int
	inward     float64
}

func sides(r gamemap.Rect) [4]wallSide {
	return [4]wallSide{
		{horizontal: true, fixed: r.Y1 - 1, from: r.X1, to: r.X2, inward: 90},
		{horizontal: true, fixed: r.Y2 + 1, from: r.X1, to: r.X2, inward: 270},
		{fixed: r.X1 - 1, from: r.Y1, to: r.Y2, inward: 0},
		{fixed: r.X2 + 1, from: r.Y1, to: r.Y2, inward: 180},
	}
}

func (s wallSide) at(i int) (int, int) {
	if s.horizontal {
		return i, s.fixed
	}
	return s.fixed, i
}

// placeMirror polishes the plain wall along one side of room. Openings
// where corridors enter are left alone.
func placeMirror(gmap *gamemap.GameMap, room gamemap.Rect, cfg *Config) {
	side := sides(room)[cfg.Rand.Intn(4)]
	for i := side.from; i <= side.to; i++ {
		x, y := side.at(i)
		if gmap.InBounds(x, y) && gmap.At(x, y).Kind == gamemap.TileWall {
			gmap.Set(x, y, gamemap.MakeMirror())
		}
	}
}

// placeGlass stands a tinted pane across the middle column of room. The
// first and last rows and the centre row stay open so the room remains
// connected.
func placeGlass(gmap *gamemap.GameMap, room gamemap.Rect, cfg *Config) {
	if room.X2-room.X1 < 4 || room.Y2-room.Y1 < 3 {
		return
	}
	tint := glassTints[cfg.Rand.Intn(len(glassTints))]
	cx, cy := room.Center()
	for y := room.Y1 + 1; y < room.Y2; y++ {
		if y != cy {
			gmap.Set(cx, y, gamemap.MakeGlass(tint))
		}
	}
}

// placeLamp mounts a lamp in a random free plain wall tile bordering a room.
func placeLamp(gmap *gamemap.GameMap, cfg *Config, taken map[[2]int]bool) (Lamp, bool) {
	const attempts = 20
	for i := 0; i < attempts; i++ {
		room := gmap.Rooms[cfg.Rand.Intn(len(gmap.Rooms))]
		side := sides(room)[cfg.Rand.Intn(4)]
		x, y := side.at(side.from + cfg.Rand.Intn(side.to-side.from+1))
		if !gmap.InBounds(x, y) || gmap.At(x, y).Kind != gamemap.TileWall || taken[[2]int{x, y}] {
			continue
		}
		return Lamp{X: x, Y: y, Facing: side.inward, Color: lampColors[cfg.Rand.Intn(len(lampColors))]}, true
	}
	return Lamp{}, false
}
