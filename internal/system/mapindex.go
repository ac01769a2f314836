package system

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"
)

// MapIndexing rebuilds the blocked flags and the per-tile occupancy cache
// from current positions.
type MapIndexing struct{}

func (MapIndexing) Name() string { return "map_indexing" }

func (MapIndexing) Run(w *world.World) {
	m := w.Map
	m.PopulateBlocked()
	m.ClearContentIndex()
	w.Positions.Each(func(id ecs.EntityID, pos *component.Position) {
		idx := m.Index(pos.X, pos.Y)
		if w.BlocksTiles.Has(id) {
			m.Blocked[idx] = true
		}
		m.TileContent[idx] = append(m.TileContent[idx], id)
	})
}
