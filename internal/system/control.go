package system

import (
	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
)

// PivotStep is how far one pivot turns an entity, in degrees.
const PivotStep = 45.0

// Pivot turns entity id one step clockwise or counter-clockwise and
// returns its new facing. Entities without a Facing start at east.
func Pivot(w *ecs.World, id ecs.EntityID, clockwise bool) float64 {
	f, _ := ecs.Lookup[component.Facing](w, id, component.CFacing)
	delta := -PivotStep
	if clockwise {
		delta = PivotStep
	}
	f = f.Turn(delta)
	w.Add(id, f)
	markDirty(w, id)
	return f.Degrees
}

// ToggleLight switches the entity's light on or off and reports whether it
// is now enabled. It returns false for entities without a light.
func ToggleLight(w *ecs.World, id ecs.EntityID) bool {
	l, ok := ecs.Lookup[component.Light](w, id, component.CLight)
	if !ok {
		return false
	}
	l.Source.Enabled = !l.Source.Enabled
	l.Source.Dirty = true
	w.Add(id, l)
	return l.Source.Enabled
}
