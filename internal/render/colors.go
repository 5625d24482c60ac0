package render

import (
	"lightcaster/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// tileGlyphs is the terrain drawn over each tile's lit background.
var tileGlyphs = map[gamemap.TileKind]string{
	gamemap.TileWall:   "#",
	gamemap.TileFloor:  ".",
	gamemap.TileMirror: "‖",
	gamemap.TileGlass:  "░",
}

// glyphLift is how far a terrain glyph is blended towards white so it reads
// against its own background.
const glyphLift = 0.3

// toTcell converts a display colour to a true-colour terminal colour.
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// tileStyle paints bg behind a glyph slightly lighter than it.
func tileStyle(bg colorful.Color) tcell.Style {
	fg := bg.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, glyphLift)
	return tcell.StyleDefault.Background(toTcell(bg)).Foreground(toTcell(fg))
}
