package component

import "delve-roguelike/internal/gamemap"

// Position is the tile an entity occupies. Items on the ground carry one;
// items in a backpack or equipped do not.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point converts the position into a map coordinate.
func (p Position) Point() gamemap.Point { return gamemap.Point{X: p.X, Y: p.Y} }

// Viewshed is the set of tiles an entity can currently see.
// Dirty forces the visibility system to recompute it.
type Viewshed struct {
	VisibleTiles []gamemap.Point `json:"visible_tiles"`
	Range        int             `json:"range"`
	Dirty        bool            `json:"dirty"`
}

// CanSee reports whether p is in the visible set.
func (v Viewshed) CanSee(p gamemap.Point) bool {
	for _, t := range v.VisibleTiles {
		if t == p {
			return true
		}
	}
	return false
}
