package component

import (
	"lightcaster/internal/ecs"
	"lightcaster/internal/light"
)

const (
	CPosition ecs.ComponentType = 1
	CFacing   ecs.ComponentType = 2
)

// Position is the tile an entity stands on.
type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Facing is the heading of an entity in degrees; 0 is east, 90 is south.
type Facing struct {
	Degrees float64
}

func (Facing) Type() ecs.ComponentType { return CFacing }

// Turn returns the facing rotated by delta degrees, normalised to [0, 360).
func (f Facing) Turn(delta float64) Facing {
	return Facing{Degrees: light.NormalizeDeg(f.Degrees + delta)}
}
