package component

import "lightcaster/internal/ecs"

const CNPC ecs.ComponentType = 6

// NPC is a named non-player entity.
type NPC struct {
	Name string
}

func (NPC) Type() ecs.ComponentType { return CNPC }
