package render

import (
	"sort"

	"lightcaster/internal/component"
	"lightcaster/internal/ecs"
	"lightcaster/internal/gamemap"
	"lightcaster/internal/light"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows kept for the status bar.
const HUDRows = 3

// Renderer draws the lit world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	tone   light.ToneMapper
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, tone light.ToneMapper) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(0, h-HUDRows)),
		tone:   tone,
	}
}

// Resize refits the viewport after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(0, h-HUDRows))
}

// CenterOn recenters the camera on world position (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// WorldToScreen converts world coordinates to screen coordinates.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// DrawFrame clears the screen and draws tiles then entities. Visible tiles
// are coloured by irradiance; explored ones by the remembered ambient.
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap, irradiance *light.Field) {
	r.screen.Clear()
	r.drawMap(gmap, irradiance)
	r.drawEntities(w, gmap, irradiance)
}

// TileColor returns the display colour of tile (x, y), and false if the
// tile has never been seen.
func (r *Renderer) TileColor(gmap *gamemap.GameMap, irradiance *light.Field, x, y int) (colorful.Color, bool) {
	tile := gmap.At(x, y)
	switch {
	case tile.Visible:
		var in light.RGB
		if irradiance.Contains(x, y) {
			in = irradiance.At(x, y)
		}
		return r.tone.Visible(tile.Color, in), true
	case tile.Explored:
		return r.tone.Remembered(tile.Color), true
	}
	return colorful.Color{}, false
}

func (r *Renderer) drawMap(gmap *gamemap.GameMap, irradiance *light.Field) {
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			c, seen := r.TileColor(gmap, irradiance, x, y)
			if !seen {
				continue
			}
			r.putGlyph(sx, sy, tileGlyphs[gmap.At(x, y).Kind], tileStyle(c))
		}
	}
}

// drawEntities renders entities on visible tiles, ordered by RenderOrder,
// keeping the lit tile colour as background.
func (r *Renderer) drawEntities(w *ecs.World, gmap *gamemap.GameMap, irradiance *light.Field) {
	type drawable struct {
		pos  component.Position
		rend component.Renderable
	}
	var list []drawable
	for _, id := range w.Query(component.CRenderable, component.CPosition) {
		pos := w.Get(id, component.CPosition).(component.Position)
		if !gmap.InBounds(pos.X, pos.Y) || !gmap.At(pos.X, pos.Y).Visible {
			continue
		}
		list = append(list, drawable{pos, w.Get(id, component.CRenderable).(component.Renderable)})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].rend.RenderOrder < list[j].rend.RenderOrder })

	for _, d := range list {
		sx, sy, onScreen := r.camera.WorldToScreen(d.pos.X, d.pos.Y)
		if !onScreen {
			continue
		}
		bg, _ := r.TileColor(gmap, irradiance, d.pos.X, d.pos.Y)
		style := tcell.StyleDefault.Background(toTcell(bg)).Foreground(d.rend.FGColor)
		r.putGlyph(sx, sy, d.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph at screen position (x, y). Wide glyphs
// claim the next column too.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
