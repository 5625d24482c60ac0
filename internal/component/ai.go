package component

import "lightcaster/internal/ecs"

const CAI ecs.ComponentType = 5

// AIBehavior describes how an NPC moves each turn.
type AIBehavior uint8

const (
	BehaviorStationary AIBehavior = iota // never moves
	BehaviorWander                       // random step
	BehaviorFollow                       // trails the player, keeping a little distance
)

// AI drives an NPC. Range is how far it can sense the player.
type AI struct {
	Behavior AIBehavior
	Range    int
}

func (AI) Type() ecs.ComponentType { return CAI }
