package render

import (
	"fmt"

	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const hpBarWidth = 20

// DrawHUD renders the status line and the newest log messages below the map.
func (r *Renderer) DrawHUD(w *world.World) {
	screenW, screenH := r.screen.Size()
	hudY := screenH - hudRows
	if hudY < 0 {
		return
	}
	r.drawHLine(hudY, colorSeparator)

	status := fmt.Sprintf("Depth: %d", w.Depth)
	x := r.drawText(1, hudY+1, status, tcell.StyleDefault.Foreground(colorStatus))
	if stats, ok := w.CombatStats.Get(w.Player); ok {
		hp := fmt.Sprintf("  HP: %d / %d ", stats.HP, stats.MaxHP)
		x = r.drawText(x, hudY+1, hp, tcell.StyleDefault.Foreground(colorStatus))
		r.drawBar(x, hudY+1, hpBarWidth, stats.HP, stats.MaxHP)
	}

	lines := w.Log.Last(hudRows - 2)
	for i, msg := range lines {
		msg = runewidth.Truncate(msg, screenW-2, "…")
		r.drawText(1, hudY+2+i, msg, tcell.StyleDefault.Foreground(colorLog))
	}
}

// drawBar draws a filled/empty gauge of the given width.
func (r *Renderer) drawBar(x, y, width, value, maxValue int) {
	filled := 0
	if maxValue > 0 {
		filled = max(0, min(width, value*width/maxValue))
	}
	for i := 0; i < width; i++ {
		bg := colorHPEmpty
		if i < filled {
			bg = colorHPFull
		}
		r.screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault.Background(bg))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text starting at (x, y) and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(1, runewidth.RuneWidth(ch))
	}
	return col
}
