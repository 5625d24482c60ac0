package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Status is what the HUD reports about the player and the light engine.
type Status struct {
	Facing      float64
	LightOn     bool
	LightColor  colorful.Color
	Emitters    int
	Rays        int
	Reflections int
	FPS         float64
}

// DrawHUD renders the status line and the latest message under the map.
func (r *Renderer) DrawHUD(st Status, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows
	if hudY < 0 {
		return
	}
	r.drawHLine(hudY, tcell.ColorGray)

	state := "off"
	if st.LightOn {
		state = "on"
	}
	line := fmt.Sprintf("facing %3.0f°  light %-3s  emitters %d  rays %d  bounces %d  %4.1f fps",
		st.Facing, state, st.Emitters, st.Rays, st.Reflections, st.FPS)
	swatch := tcell.StyleDefault.Background(toTcell(st.LightColor))
	r.screen.SetContent(0, hudY+1, ' ', nil, swatch)
	r.screen.SetContent(1, hudY+1, ' ', nil, swatch)
	r.drawText(3, hudY+1, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	if len(messages) > 0 {
		r.drawText(0, hudY+2, messages[len(messages)-1], tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
}
