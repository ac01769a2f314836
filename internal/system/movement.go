package system

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, occupied tile or out-of-bounds
	MoveAttack                    // bumped a fighter; a melee intent was queued
)

// TryMove attempts to move entity id by (dx, dy). Bumping a tile whose
// occupant has combat stats queues WantsToMelee instead of moving. Reads
// the occupancy cache and blocked flags from the last map indexing pass.
func TryMove(w *world.World, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	pos := w.Positions.GetMut(id)
	if pos == nil {
		return MoveBlocked, ecs.NilEntity
	}
	m := w.Map
	nx, ny := pos.X+dx, pos.Y+dy
	if !m.InBounds(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}
	idx := m.Index(nx, ny)

	for _, other := range m.TileContent[idx] {
		if other == id || !w.ECS.Alive(other) || !w.CombatStats.Has(other) {
			continue
		}
		w.WantsToMelees.Insert(id, component.WantsToMelee{Target: other})
		return MoveAttack, other
	}
	if m.Blocked[idx] {
		return MoveBlocked, ecs.NilEntity
	}

	pos.X, pos.Y = nx, ny
	if vs := w.Viewsheds.GetMut(id); vs != nil {
		vs.Dirty = true
	}
	return MoveOK, ecs.NilEntity
}

// ItemAt returns the first item lying on (x, y), using the occupancy cache.
func ItemAt(w *world.World, x, y int) (ecs.EntityID, bool) {
	if !w.Map.InBounds(x, y) {
		return ecs.NilEntity, false
	}
	for _, id := range w.Map.TileContent[w.Map.Index(x, y)] {
		if w.Items.Has(id) && w.Positions.Has(id) {
			return id, true
		}
	}
	return ecs.NilEntity, false
}

// MonsterVisible reports whether any monster stands in viewer's viewshed.
func MonsterVisible(w *world.World, viewer ecs.EntityID) bool {
	vs, ok := w.Viewsheds.Get(viewer)
	if !ok {
		return false
	}
	m := w.Map
	for _, p := range vs.VisibleTiles {
		for _, id := range m.TileContent[m.Index(p.X, p.Y)] {
			if w.Monsters.Has(id) {
				return true
			}
		}
	}
	return false
}
