package render

import (
	"delve-roguelike/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// tileLook is how one tile type is drawn. Lit is used while the tile is in
// view, Dim once it has only been revealed.
type tileLook struct {
	Glyph rune
	Lit   tcell.Color
	Dim   tcell.Color
}

var tileLooks = map[gamemap.TileType]tileLook{
	gamemap.TileWall:       {Glyph: '#', Lit: tcell.ColorLime, Dim: tcell.ColorGray},
	gamemap.TileFloor:      {Glyph: '.', Lit: tcell.ColorTeal, Dim: tcell.ColorDimGray},
	gamemap.TileDownStairs: {Glyph: '>', Lit: tcell.ColorAqua, Dim: tcell.ColorSlateGray},
}

// UI colours.
var (
	colorSeparator = tcell.ColorGray
	colorStatus    = tcell.ColorYellow
	colorHPFull    = tcell.ColorRed
	colorHPEmpty   = tcell.ColorMaroon
	colorLog       = tcell.ColorWhite
	colorMenuTitle = tcell.ColorYellow
	colorMenuKey   = tcell.ColorYellow
	colorTarget    = tcell.ColorNavy
	colorCursor    = tcell.ColorAqua
)
