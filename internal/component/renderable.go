package component

import "github.com/gdamore/tcell/v2"

// Renderable describes how an entity is drawn. Lower RenderOrder values are
// drawn later, on top of anything sharing the tile.
type Renderable struct {
	Glyph       string      `json:"glyph"`
	FG          tcell.Color `json:"fg"`
	BG          tcell.Color `json:"bg"`
	RenderOrder int         `json:"render_order"`
}

// Name is the display name used in log lines and menus.
type Name struct {
	Name string `json:"name"`
}
