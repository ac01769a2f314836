package render

import (
	"sort"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows below the map: a separator, the status
// line, and the message panel.
const hudRows = 7

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, camera: NewCamera(0, 0)}
	r.Resize()
	return r
}

// Resize re-reads the screen size; call after a tcell.EventResize.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(0, h-hudRows)
}

// ScreenToWorld converts a screen cell (e.g. a mouse click) to a map tile.
func (r *Renderer) ScreenToWorld(sx, sy int) (int, int) {
	return r.camera.ScreenToWorld(sx, sy)
}

// DrawFrame clears the screen and renders the map, visible entities and
// the HUD. Overlays are drawn on top by the caller before Show.
func (r *Renderer) DrawFrame(w *world.World) {
	r.screen.Clear()
	if w.Map == nil {
		return
	}
	if pos, ok := w.PlayerPosition(); ok {
		r.camera.Center(pos.X, pos.Y, w.Map.Width, w.Map.Height)
	}
	r.drawMap(w.Map)
	r.drawEntities(w)
	r.DrawHUD(w)
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// drawMap renders revealed tiles, lit when currently visible and dimmed
// otherwise.
func (r *Renderer) drawMap(m *gamemap.Map) {
	for idx, tile := range m.Tiles {
		if !m.Revealed[idx] {
			continue
		}
		x, y := m.XY(idx)
		sx, sy, onScreen := r.camera.WorldToScreen(x, y)
		if !onScreen {
			continue
		}
		look := tileLooks[tile]
		fg := look.Dim
		if m.Visible[idx] {
			fg = look.Lit
		}
		r.screen.SetContent(sx, sy, look.Glyph, nil, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack))
	}
}

type drawable struct {
	pos  component.Position
	rend component.Renderable
}

// drawEntities renders every entity on a visible tile. Entities are sorted
// by descending RenderOrder so the lowest value is drawn last, on top.
func (r *Renderer) drawEntities(w *world.World) {
	var list []drawable
	for _, id := range ecs.Join(w.Positions, w.Renderables) {
		pos, _ := w.Positions.Get(id)
		rend, _ := w.Renderables.Get(id)
		if !w.Map.InBounds(pos.X, pos.Y) || !w.Map.Visible[w.Map.Index(pos.X, pos.Y)] {
			continue
		}
		list = append(list, drawable{pos: pos, rend: rend})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].rend.RenderOrder > list[j].rend.RenderOrder
	})
	for _, d := range list {
		sx, sy, onScreen := r.camera.WorldToScreen(d.pos.X, d.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(d.rend.FG).Background(d.rend.BG)
		r.putGlyph(sx, sy, d.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune) at screen position (x, y).
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
