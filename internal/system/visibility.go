package system

import (
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"
)

// Visibility recomputes dirty viewsheds. The player's viewshed also drives
// the map's visible and revealed flags.
type Visibility struct{}

func (Visibility) Name() string { return "visibility" }

func (Visibility) Run(w *world.World) {
	m := w.Map
	for _, id := range ecs.Join(w.Viewsheds, w.Positions) {
		vs := w.Viewsheds.GetMut(id)
		if !vs.Dirty {
			continue
		}
		pos, _ := w.Positions.Get(id)
		vs.VisibleTiles = m.FieldOfView(pos.Point(), vs.Range)
		vs.Dirty = false

		if !w.Players.Has(id) {
			continue
		}
		clear(m.Visible)
		for _, p := range vs.VisibleTiles {
			idx := m.Index(p.X, p.Y)
			m.Visible[idx] = true
			m.Revealed[idx] = true
		}
	}
}
