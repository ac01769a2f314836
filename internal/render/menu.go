package render

import (
	"fmt"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// MaxMenuOptions is the number of options an item menu can label, one per
// letter a..z.
const MaxMenuOptions = 26

// DrawItemMenu draws a boxed, letter-indexed list of options near the
// top-left of the map area. Options past MaxMenuOptions are not shown.
func (r *Renderer) DrawItemMenu(title string, options []string) {
	options = options[:min(len(options), MaxMenuOptions)]
	width := runewidth.StringWidth(title) + 4
	for _, o := range options {
		width = max(width, runewidth.StringWidth(o)+6)
	}
	x, y := 15, 8
	height := len(options) + 3
	r.drawBox(x, y, width, height)
	r.drawText(x+2, y, title, tcell.StyleDefault.Foreground(colorMenuTitle))
	for i, o := range options {
		row := y + 1 + i
		key := fmt.Sprintf("(%c)", 'a'+i)
		r.drawText(x+1, row, key, tcell.StyleDefault.Foreground(colorMenuKey))
		r.drawText(x+5, row, o, tcell.StyleDefault)
	}
	if len(options) == 0 {
		r.drawText(x+2, y+1, "(empty)", tcell.StyleDefault)
	}
	r.drawText(x+2, y+height-1, "ESCAPE to cancel", tcell.StyleDefault.Foreground(colorMenuTitle))
}

// DrawTargeting highlights the tiles the player can see within rng and
// draws the cursor at the given tile.
func (r *Renderer) DrawTargeting(w *world.World, rng int, cursor gamemap.Point) {
	r.drawText(5, 0, "Select Target:", tcell.StyleDefault.Foreground(colorMenuTitle))
	pos, ok := w.PlayerPosition()
	if !ok {
		return
	}
	vs, ok := w.Viewsheds.Get(w.Player)
	if !ok {
		return
	}
	for _, p := range vs.VisibleTiles {
		if world.Distance(pos, component.Position{X: p.X, Y: p.Y}) > float64(rng) {
			continue
		}
		r.tint(p, colorTarget)
	}
	r.tint(cursor, colorCursor)
}

// tint recolours the background of an already drawn map cell.
func (r *Renderer) tint(p gamemap.Point, bg tcell.Color) {
	sx, sy, onScreen := r.camera.WorldToScreen(p.X, p.Y)
	if !onScreen {
		return
	}
	mainc, combc, style, _ := r.screen.GetContent(sx, sy)
	r.screen.SetContent(sx, sy, mainc, combc, style.Background(bg))
}

// DrawMainMenu renders the title screen with the selected option highlighted.
func (r *Renderer) DrawMainMenu(title string, options []string, selected int) {
	r.screen.Clear()
	w, h := r.screen.Size()
	y := h/2 - len(options)
	r.drawCentered(w, y, title, tcell.StyleDefault.Foreground(colorMenuTitle).Bold(true))
	for i, o := range options {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if i == selected {
			style = style.Foreground(tcell.ColorBlack).Background(colorMenuKey)
		}
		r.drawCentered(w, y+2+i, o, style)
	}
}

// DrawGameOver renders the death screen.
func (r *Renderer) DrawGameOver(depth int) {
	r.screen.Clear()
	w, h := r.screen.Size()
	y := h/2 - 2
	r.drawCentered(w, y, "Your journey has ended!", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	r.drawCentered(w, y+2, fmt.Sprintf("You reached depth %d.", depth), tcell.StyleDefault)
	r.drawCentered(w, y+4, "Press any key to return to the menu.", tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func (r *Renderer) drawCentered(screenW, y int, text string, style tcell.Style) {
	x := max(0, (screenW-runewidth.StringWidth(text))/2)
	r.drawText(x, y, text, style)
}

func (r *Renderer) drawBox(x, y, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			ch := ' '
			switch {
			case (row == y || row == y+h-1) && (col == x || col == x+w-1):
				ch = '+'
			case row == y || row == y+h-1:
				ch = '─'
			case col == x || col == x+w-1:
				ch = '│'
			}
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}
