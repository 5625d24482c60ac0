package system

import (
	"math"
	"math/rand"

	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/gamemap"
)

// followDistance is how close a following NPC tries to stay to the player.
const followDistance = 2.0

// compass lists the eight single-tile steps.
var compass = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// ProcessAI runs one turn for every AI-driven entity and returns those that
// moved. A moved entity's light is dirtied by TryMove.
func ProcessAI(w *ecs.World, gmap *gamemap.GameMap, playerID ecs.EntityID, rng *rand.Rand) []ecs.EntityID {
	playerPos, hasPlayer := ecs.Lookup[component.Position](w, playerID, component.CPosition)

	var moved []ecs.EntityID
	for _, id := range w.Query(component.CAI, component.CPosition) {
		ai := w.Get(id, component.CAI).(component.AI)
		pos := w.Get(id, component.CPosition).(component.Position)

		var ok bool
		switch ai.Behavior {
		case component.BehaviorWander:
			ok = wander(w, gmap, id, rng)
		case component.BehaviorFollow:
			if hasPlayer {
				ok = follow(w, gmap, id, pos, playerPos, ai.Range)
			}
		}
		if ok {
			moved = append(moved, id)
		}
	}
	return moved
}

// wander tries one random step, falling back to the next directions round
// the compass until one succeeds.
func wander(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, rng *rand.Rand) bool {
	first := rng.Intn(len(compass))
	for i := range compass {
		d := compass[(first+i)%len(compass)]
		if TryMoveSimple(w, gmap, id, d[0], d[1]) == MoveOK {
			return true
		}
	}
	return false
}

// follow steps towards target when it is within sight but farther than
// followDistance, trying the horizontal step before the vertical one.
func follow(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, pos, target component.Position, sight int) bool {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	dist := math.Hypot(float64(dx), float64(dy))
	if dist > float64(sight) || dist <= followDistance {
		return false
	}
	if dx != 0 && TryMoveSimple(w, gmap, id, sign(dx), 0) == MoveOK {
		return true
	}
	return dy != 0 && TryMoveSimple(w, gmap, id, 0, sign(dy)) == MoveOK
}

// TryMoveSimple is a convenience wrapper that discards the bumped entity.
func TryMoveSimple(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) MoveResult {
	r, _ := TryMove(w, gmap, id, dx, dy)
	return r
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
