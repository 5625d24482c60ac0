// Package game runs the interactive lighting demo on a tcell screen.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/factory"
	"lightcaster/internal/gamemap"
	"lightcaster/internal/generate"
	"lightcaster/internal/light"
	"lightcaster/internal/render"
	"lightcaster/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
)

// maxMessages bounds the message log.
const maxMessages = 50

// Config holds the settings of one game.
type Config struct {
	MapWidth, MapHeight int
	FOVRadius           int
	FPS                 int // frame cap; 0 draws as fast as input arrives
	Seed                int64
	Light               light.Config
}

// DefaultConfig returns the settings used by the demo.
func DefaultConfig() Config {
	return Config{
		MapWidth:  80,
		MapHeight: 40,
		FOVRadius: 20,
		FPS:       30,
		Seed:      time.Now().UnixNano(),
		Light:     light.DefaultConfig(),
	}
}

// Game is the top-level orchestrator.
type Game struct {
	cfg      Config
	screen   tcell.Screen
	renderer *render.Renderer
	lighting *system.Lighting
	log      logrus.FieldLogger

	world    *ecs.World
	gmap     *gamemap.GameMap
	playerID ecs.EntityID
	bearerID ecs.EntityID
	rng      *rand.Rand
	messages []string

	lastFrame time.Time
	fps       float64
}

// New builds a level and its entities. The screen must already be
// initialised; Run finalises it.
func New(screen tcell.Screen, cfg Config, log logrus.FieldLogger) (*Game, error) {
	if cfg.MapWidth < 10 || cfg.MapHeight < 10 {
		return nil, fmt.Errorf("map %dx%d is too small", cfg.MapWidth, cfg.MapHeight)
	}
	engine, err := light.NewEngine(cfg.Light, light.DefaultTables())
	if err != nil {
		return nil, fmt.Errorf("light engine: %w", err)
	}

	gcfg := generate.DefaultConfig(cfg.MapWidth, cfg.MapHeight, cfg.Seed)
	lvl := generate.Generate(gcfg)

	g := &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: render.NewRenderer(screen, light.NewToneMapper(cfg.Light)),
		lighting: system.NewLighting(engine, cfg.MapWidth, cfg.MapHeight, log),
		log:      log,
		world:    ecs.NewWorld(),
		gmap:     lvl.Map,
		rng:      gcfg.Rand,
	}
	g.playerID, g.bearerID = factory.Populate(g.world, lvl)

	log.WithFields(logrus.Fields{
		"seed":  cfg.Seed,
		"rooms": len(lvl.Map.Rooms),
		"lamps": len(lvl.Lamps),
	}).Info("level generated")

	g.refresh()
	g.addMessage("Move with hjklyubn or arrows. [ ] pivot, f torch, g lantern, q quit.")
	return g, nil
}

// Run is the main loop. It returns when the player quits.
func (g *Game) Run() {
	defer g.screen.Fini()

	for {
		g.draw()
		g.capFrameRate()

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer.Resize()
		case *tcell.EventKey:
			if !g.Apply(keyToAction(ev)) {
				g.log.Info("player quit")
				return
			}
		}
	}
}

// Apply performs one player action and reports whether the game goes on.
func (g *Game) Apply(action Action) bool {
	turnUsed := false

	switch action {
	case ActionQuit:
		return false

	case ActionWait:
		turnUsed = true

	case ActionPivotLeft, ActionPivotRight:
		deg := system.Pivot(g.world, g.playerID, action == ActionPivotRight)
		g.addMessage(fmt.Sprintf("You turn to face %s.", compassName(deg)))

	case ActionToggleLight:
		if system.ToggleLight(g.world, g.playerID) {
			g.addMessage("You switch your torch on.")
		} else {
			g.addMessage("You switch your torch off.")
		}

	case ActionToggleLantern:
		if g.bearerID == ecs.NilEntity {
			g.addMessage("There is no lantern bearer here.")
			break
		}
		if system.ToggleLight(g.world, g.bearerID) {
			g.addMessage("The lantern bearer uncovers the lantern.")
		} else {
			g.addMessage("The lantern bearer shutters the lantern.")
		}

	default:
		dx, dy := actionToDelta(action)
		if dx == 0 && dy == 0 {
			return true
		}
		switch res, _ := system.TryMove(g.world, g.gmap, g.playerID, dx, dy); res {
		case system.MoveOK:
			turnUsed = true
		case system.MoveBump:
			g.addMessage("The lantern bearer is in the way.")
		}
	}

	if turnUsed {
		system.ProcessAI(g.world, g.gmap, g.playerID, g.rng)
	}
	g.refresh()
	return true
}

// refresh recomputes what the player sees and the light falling on it.
func (g *Game) refresh() {
	system.UpdateFOV(g.world, g.gmap, g.playerID, g.cfg.FOVRadius)
	if g.lighting.Update(g.world, g.gmap) {
		st := g.lighting.Stats()
		g.log.WithFields(logrus.Fields{
			"emitters":    st.Emitters,
			"recomputed":  st.Recomputed,
			"rays":        st.Rays,
			"reflections": st.Reflections,
		}).Debug("irradiance updated")
	}
}

func (g *Game) draw() {
	pos, _ := ecs.Lookup[component.Position](g.world, g.playerID, component.CPosition)
	g.renderer.CenterOn(pos.X, pos.Y)
	g.renderer.DrawFrame(g.world, g.gmap, g.lighting.Irradiance())
	g.renderer.DrawHUD(g.status(), g.messages)
}

func (g *Game) status() render.Status {
	facing, _ := ecs.Lookup[component.Facing](g.world, g.playerID, component.CFacing)
	lc, _ := ecs.Lookup[component.Light](g.world, g.playerID, component.CLight)
	st := g.lighting.Stats()

	bounced := 0
	for _, n := range lc.Reflections {
		bounced += n
	}
	i := lc.Source.Intensity.Scale(1 / max(lc.Source.Intensity.MaxChannel(), 1e-9))
	return render.Status{
		Facing:      facing.Degrees,
		LightOn:     lc.Source.Enabled,
		LightColor:  colorful.Color{R: i.R, G: i.G, B: i.B},
		Emitters:    st.Emitters,
		Rays:        lc.Rays,
		Reflections: bounced,
		FPS:         g.fps,
	}
}

// capFrameRate sleeps so frames are at least 1/FPS apart and tracks the
// achieved rate.
func (g *Game) capFrameRate() {
	now := time.Now()
	if g.cfg.FPS > 0 && !g.lastFrame.IsZero() {
		budget := time.Second / time.Duration(g.cfg.FPS)
		if wait := budget - now.Sub(g.lastFrame); wait > 0 {
			time.Sleep(wait)
			now = time.Now()
		}
	}
	if !g.lastFrame.IsZero() {
		if dt := now.Sub(g.lastFrame).Seconds(); dt > 0 {
			g.fps = 1 / dt
		}
	}
	g.lastFrame = now
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// compassName names the nearest of the eight compass points.
func compassName(deg float64) string {
	names := [8]string{"east", "south-east", "south", "south-west", "west", "north-west", "north", "north-east"}
	return names[int(light.NormalizeDeg(deg+22.5)/45)%8]
}
