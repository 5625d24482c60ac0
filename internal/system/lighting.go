package system

import (
	"image"
	"slices"

	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/gamemap"
	"lightcaster/internal/light"

	"github.com/sirupsen/logrus"
)

// LightStats summarises the most recent Update.
type LightStats struct {
	Emitters    int // entities carrying a light
	Recomputed  int // fields rebuilt this update
	Rays        int // rays cast by the rebuilt fields
	Reflections int // bounce sources cast by the rebuilt fields
}

// Lighting keeps every emitter's field current and the summed irradiance
// of the map up to date.
type Lighting struct {
	engine     *light.Engine
	integrator *light.Integrator
	log        logrus.FieldLogger

	emitters []ecs.EntityID // emitters seen by the last integration
	primed   bool
	stats    LightStats
}

// NewLighting returns a lighting system for a width x height map.
func NewLighting(engine *light.Engine, width, height int, log logrus.FieldLogger) *Lighting {
	return &Lighting{
		engine:     engine,
		integrator: light.NewIntegrator(width, height),
		log:        log.WithField("component", "lighting"),
	}
}

// Update rebuilds the field of every dirty emitter and, if anything
// changed, re-sums the irradiance. It reports whether the irradiance changed.
func (l *Lighting) Update(w *ecs.World, gmap *gamemap.GameMap) bool {
	ids := w.Query(component.CLight, component.CPosition)
	l.stats = LightStats{Emitters: len(ids)}

	changed := !l.primed || !slices.Equal(ids, l.emitters)
	for _, id := range ids {
		lc := w.Get(id, component.CLight).(component.Light)
		if !lc.Source.Dirty {
			continue
		}
		pos := w.Get(id, component.CPosition).(component.Position)
		l.recompute(w, gmap, id, &lc, pos)
		w.Add(id, lc)
		changed = true
	}
	if !changed {
		return false
	}

	fields := make([]*light.Field, 0, len(ids))
	for _, id := range ids {
		lc := w.Get(id, component.CLight).(component.Light)
		if lc.Source.Enabled {
			fields = append(fields, lc.Field)
		}
	}
	l.integrator.Sum(fields)
	l.emitters = ids
	l.primed = true
	return true
}

func (l *Lighting) recompute(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, lc *component.Light, pos component.Position) {
	lc.Source.Dirty = false
	if !lc.Source.Enabled {
		lc.Field = light.Placeholder(pos.X, pos.Y)
		lc.Rays, lc.Reflections = 0, nil
		l.log.WithField("entity", id).Debug("light disabled")
		return
	}

	facing, _ := ecs.Lookup[component.Facing](w, id, component.CFacing)
	res := l.engine.Compute(gmap, lc.Source.Emission(image.Pt(pos.X, pos.Y), facing.Degrees))
	lc.Field, lc.Rays, lc.Reflections = res.Field, res.Rays, res.Reflections

	bounced := 0
	for _, n := range res.Reflections {
		bounced += n
	}
	l.stats.Recomputed++
	l.stats.Rays += res.Rays
	l.stats.Reflections += bounced
	l.log.WithFields(logrus.Fields{
		"entity":      id,
		"rays":        res.Rays,
		"reflections": res.Reflections,
		"bounds":      res.Field.Bounds.String(),
	}).Debug("light recomputed")
}

// Irradiance returns the summed light of all enabled emitters.
func (l *Lighting) Irradiance() *light.Field { return l.integrator.Irradiance() }

// Stats returns counters from the last Update.
func (l *Lighting) Stats() LightStats { return l.stats }
