package gamemap

import (
	"fmt"

	"delve-roguelike/internal/ecs"
)

// Point is a tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewRect builds a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Map holds the tile grid for one dungeon level. Every per-tile slice is
// addressed by the same flat index (see Index).
type Map struct {
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Tiles    []TileType `json:"tiles"`
	Rooms    []Rect     `json:"rooms"`
	Revealed []bool     `json:"revealed_tiles"`
	Visible  []bool     `json:"visible_tiles"`
	Blocked  []bool     `json:"blocked"`

	// TileContent is rebuilt by map indexing every pass; never persisted.
	TileContent [][]ecs.EntityID `json:"-"`
}

// New creates a Map filled with walls.
func New(width, height int) *Map {
	n := width * height
	m := &Map{
		Width:       width,
		Height:      height,
		Tiles:       make([]TileType, n),
		Revealed:    make([]bool, n),
		Visible:     make([]bool, n),
		Blocked:     make([]bool, n),
		TileContent: make([][]ecs.EntityID, n),
	}
	return m
}

// Len returns the number of tiles.
func (m *Map) Len() int { return m.Width * m.Height }

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Index converts a coordinate into the flat tile index.
// Panics when (x, y) is outside the map.
func (m *Map) Index(x, y int) int {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("gamemap: (%d,%d) outside %dx%d map", x, y, m.Width, m.Height))
	}
	return y*m.Width + x
}

// XY converts a flat index back into a coordinate.
func (m *Map) XY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// At returns the tile type at (x, y).
func (m *Map) At(x, y int) TileType {
	return m.Tiles[m.Index(x, y)]
}

// Set replaces the tile at (x, y).
func (m *Map) Set(x, y int, t TileType) {
	m.Tiles[m.Index(x, y)] = t
}

// IsOpaque reports whether the tile at idx blocks line of sight.
func (m *Map) IsOpaque(idx int) bool {
	return m.Tiles[idx].Opaque()
}

// IsTransparent returns true when (x, y) is in bounds and not opaque.
func (m *Map) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return !m.IsOpaque(y*m.Width + x)
}

// IsExitValid reports whether an actor may step onto (x, y).
func (m *Map) IsExitValid(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return !m.Blocked[y*m.Width+x]
}

// PopulateBlocked resets Blocked to the static geometry (walls only).
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = !t.Walkable()
	}
}

// ClearContentIndex empties the occupancy cache, keeping it sized to the map.
func (m *Map) ClearContentIndex() {
	if len(m.TileContent) != m.Len() {
		m.TileContent = make([][]ecs.EntityID, m.Len())
		return
	}
	for i := range m.TileContent {
		m.TileContent[i] = m.TileContent[i][:0]
	}
}

// Clone returns a deep copy. The occupancy cache is not copied.
func (m *Map) Clone() *Map {
	c := &Map{
		Width:    m.Width,
		Height:   m.Height,
		Tiles:    append([]TileType(nil), m.Tiles...),
		Rooms:    append([]Rect(nil), m.Rooms...),
		Revealed: append([]bool(nil), m.Revealed...),
		Visible:  append([]bool(nil), m.Visible...),
		Blocked:  append([]bool(nil), m.Blocked...),
	}
	c.TileContent = make([][]ecs.EntityID, c.Len())
	return c
}
