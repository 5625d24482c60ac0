// Package factory assembles the entities of a level from components.
package factory

import (
	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/generate"
	"lightcaster/internal/light"

	"github.com/gdamore/tcell/v2"
)

// BearerSight is how far the lantern bearer notices the player.
const BearerSight = 12

// Torch is the player's hand-held beam, held slightly ahead of them.
func Torch() light.Source {
	return light.Source{
		Enabled:     true,
		Intensity:   light.RGB{R: 3, G: 2.8, B: 2.4},
		Sweep:       35,
		Collimation: 30,
		Offset:      light.Vec{X: 0.3},
	}
}

// Lantern is an all-round warm light.
func Lantern() light.Source {
	return light.Source{
		Enabled:   true,
		Intensity: light.RGB{R: 1.6, G: 1.1, B: 0.5},
		Sweep:     180,
	}
}

// WallLamp is a lamp of the given colour mounted in a wall. Its emission
// point sits just outside the wall face it looks through.
func WallLamp(c light.RGB) light.Source {
	return light.Source{
		Enabled:     true,
		Intensity:   c.Scale(2.5),
		Sweep:       70,
		Collimation: 10,
		Offset:      light.Vec{X: 0.55},
	}
}

// NewPlayer creates the player entity at (x, y) facing east with a torch.
func NewPlayer(w *ecs.World, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Facing{})
	w.Add(id, component.Renderable{
		Glyph:       "@",
		FGColor:     tcell.ColorYellow,
		RenderOrder: 10,
	})
	w.Add(id, component.NewLight(Torch(), x, y))
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.TagBlocking{})
	return id
}

// NewLanternBearer creates an NPC carrying a lantern that follows the player.
func NewLanternBearer(w *ecs.World, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Facing{})
	w.Add(id, component.Renderable{
		Glyph:       "&",
		FGColor:     tcell.ColorOrange,
		RenderOrder: 5,
	})
	w.Add(id, component.NPC{Name: "lantern bearer"})
	w.Add(id, component.AI{Behavior: component.BehaviorFollow, Range: BearerSight})
	w.Add(id, component.NewLight(Lantern(), x, y))
	w.Add(id, component.TagBlocking{})
	return id
}

// NewWallLamp creates an emitter embedded in the wall tile of lamp. It has
// no glyph; the wall is drawn in its place.
func NewWallLamp(w *ecs.World, lamp generate.Lamp) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: lamp.X, Y: lamp.Y})
	w.Add(id, component.Facing{Degrees: lamp.Facing})
	w.Add(id, component.NewLight(WallLamp(lamp.Color), lamp.X, lamp.Y))
	return id
}

// Populate spawns the player, the lantern bearer and every wall lamp of
// lvl, returning the ids of the player and the bearer. The bearer id is
// ecs.NilEntity when the level has no room for one.
func Populate(w *ecs.World, lvl *generate.Level) (player, bearer ecs.EntityID) {
	player = NewPlayer(w, lvl.StartX, lvl.StartY)
	bearer = ecs.NilEntity
	if lvl.BearerX >= 0 {
		bearer = NewLanternBearer(w, lvl.BearerX, lvl.BearerY)
	}
	for _, lamp := range lvl.Lamps {
		NewWallLamp(w, lamp)
	}
	return player, bearer
}
