package component

import (
	"lightcaster/internal/ecs"
	"lightcaster/internal/light"
)

const CLight ecs.ComponentType = 4

// Light is an emitter carried by an entity together with the field it
// last produced. The field is replaced wholesale on every recalculation.
type Light struct {
	Source light.Source
	Field  *light.Field

	Rays        int   // rays cast by the last recalculation
	Reflections []int // bounce sources per reflection level
}

func (Light) Type() ecs.ComponentType { return CLight }

// NewLight wraps src for an entity at (x, y). It starts dirty with an empty
// one-tile field so the first lighting pass computes it.
func NewLight(src light.Source, x, y int) Light {
	src.Dirty = true
	return Light{Source: src, Field: light.Placeholder(x, y)}
}
