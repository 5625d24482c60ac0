package light

import "image"

// Surface is what the engine needs to know about one map tile.
type Surface struct {
	Blocked         bool // blocks movement
	BlocksSight     bool
	Color           RGB
	Reflectivity    float64 // 0 fully diffuse, 1 perfect mirror
	RefractiveIndex float64 // carried for transparent solids; refraction is not simulated
}

// Map is the read-only view of the world the engine raycasts against.
type Map interface {
	Size() (width, height int)
	Surface(x, y int) Surface
}

// Source describes the light carried by an object.
type Source struct {
	Enabled     bool
	Intensity   RGB
	Sweep       float64 // half-angle of the emission cone in degrees, 0-180
	Collimation float64 // 0 diverging inverse-square, 90 non-diverging beam
	Offset      Vec     // emission point relative to the tile centre, before rotation
	Dirty       bool
}

// Emission places s on tile facing the given direction.
func (s Source) Emission(tile image.Point, facing float64) Emission {
	centre := Vec{float64(tile.X) + 0.5, float64(tile.Y) + 0.5}
	return Emission{
		Origin:      centre.Add(s.Offset.Rotate(facing)),
		Housing:     tile,
		Direction:   NormalizeDeg(facing),
		Intensity:   s.Intensity,
		Sweep:       s.Sweep,
		Collimation: s.Collimation,
	}
}

// Emission is one raycast pass worth of light: a real emitter or a bounce.
type Emission struct {
	Origin      Vec
	Housing     image.Point // tile the emitter sits in; never self-lit when opaque
	Direction   float64
	Intensity   RGB
	Sweep       float64
	Collimation float64
	Face        Face // struck face for bounces, FaceNone for objects
}

// Face identifies one edge of a tile.
type Face uint8

const (
	FaceNone Face = iota
	FaceEast
	FaceSouth
	FaceWest
	FaceNorth
)

// Normal returns the outward direction of the face in degrees.
func (f Face) Normal() float64 {
	switch f {
	case FaceSouth:
		return 90
	case FaceWest:
		return 180
	case FaceNorth:
		return 270
	}
	return 0
}

// Neighbor returns the tile on the other side of the face.
func (f Face) Neighbor(tile image.Point) image.Point {
	switch f {
	case FaceEast:
		return tile.Add(image.Pt(1, 0))
	case FaceSouth:
		return tile.Add(image.Pt(0, 1))
	case FaceWest:
		return tile.Add(image.Pt(-1, 0))
	case FaceNorth:
		return tile.Add(image.Pt(0, -1))
	}
	return tile
}

func (f Face) String() string {
	switch f {
	case FaceEast:
		return "east"
	case FaceSouth:
		return "south"
	case FaceWest:
		return "west"
	case FaceNorth:
		return "north"
	}
	return "none"
}
