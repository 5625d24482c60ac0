package gamemap

import "lightcaster/internal/light"

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileMirror
	TileGlass
)

func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileMirror:
		return "mirror"
	case TileGlass:
		return "glass"
	}
	return "wall"
}

// Tile holds the static surface of one cell plus its view state.
// Only Explored and Visible change once the map is carved.
type Tile struct {
	Kind            TileKind
	Blocked         bool
	BlocksSight     bool
	Explored        bool
	Visible         bool
	Color           light.RGB
	Reflectivity    float64
	RefractiveIndex float64
}

// Surface returns the part of t the lighting engine reads.
func (t Tile) Surface() light.Surface {
	return light.Surface{
		Blocked:         t.Blocked,
		BlocksSight:     t.BlocksSight,
		Color:           t.Color,
		Reflectivity:    t.Reflectivity,
		RefractiveIndex: t.RefractiveIndex,
	}
}

// MakeWall returns rough grey stone that scatters most of its light.
func MakeWall() Tile {
	return Tile{
		Kind:         TileWall,
		Blocked:      true,
		BlocksSight:  true,
		Color:        light.RGB{R: 0.55, G: 0.52, B: 0.5},
		Reflectivity: 0.05,
	}
}

// MakeFloor returns open, walkable flagstone.
func MakeFloor() Tile {
	return Tile{
		Kind:  TileFloor,
		Color: light.RGB{R: 0.7, G: 0.66, B: 0.6},
	}
}

// MakeMirror returns a polished opaque wall.
func MakeMirror() Tile {
	return Tile{
		Kind:         TileMirror,
		Blocked:      true,
		BlocksSight:  true,
		Color:        light.RGB{R: 0.9, G: 0.95, B: 1},
		Reflectivity: 0.9,
	}
}

// MakeGlass returns a see-through pane that filters light by tint.
func MakeGlass(tint light.RGB) Tile {
	return Tile{
		Kind:            TileGlass,
		Blocked:         true,
		Color:           tint,
		Reflectivity:    0.08,
		RefractiveIndex: 1.5,
	}
}
