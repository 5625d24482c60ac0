package system

import (
	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, glass or out-of-bounds
	MoveBump                      // another blocking entity is in the way
)

// TryMove attempts to move entity id by (dx, dy) on gmap. On MoveBump the
// entity in the way is returned. A successful move dirties the entity's light.
func TryMove(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	pos, ok := ecs.Lookup[component.Position](w, id, component.CPosition)
	if !ok {
		return MoveBlocked, ecs.NilEntity
	}
	nx, ny := pos.X+dx, pos.Y+dy

	for _, other := range w.Query(component.CTagBlocking, component.CPosition) {
		if other == id {
			continue
		}
		op := w.Get(other, component.CPosition).(component.Position)
		if op.X == nx && op.Y == ny {
			return MoveBump, other
		}
	}

	if !gmap.IsWalkable(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}

	w.Add(id, component.Position{X: nx, Y: ny})
	markDirty(w, id)
	return MoveOK, ecs.NilEntity
}

// markDirty flags the entity's light for recalculation, if it has one.
func markDirty(w *ecs.World, id ecs.EntityID) {
	l, ok := ecs.Lookup[component.Light](w, id, component.CLight)
	if !ok {
		return
	}
	l.Source.Dirty = true
	w.Add(id, l)
}
