package system

import (
	"math/rand"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/world"
)

// openMap creates a w×h map that is floor inside a one-tile wall border.
func openMap(w, h int) *gamemap.Map {
	m := gamemap.New(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m.Set(x, y, gamemap.TileFloor)
		}
	}
	m.PopulateBlocked()
	return m
}

// newTestWorld creates a world with a player at (px, py) on a 20×20 open map.
func newTestWorld(px, py int) *world.World {
	w := world.New(rand.New(rand.NewSource(1)), nil)
	w.Map = openMap(20, 20)
	p := w.Spawn()
	w.Positions.Insert(p, component.Position{X: px, Y: py})
	w.Players.Insert(p, component.Player{})
	w.Names.Insert(p, component.Name{Name: "Player"})
	w.BlocksTiles.Insert(p, component.BlocksTile{})
	w.Viewsheds.Insert(p, component.Viewshed{Range: 8, Dirty: true})
	w.CombatStats.Insert(p, component.CombatStats{MaxHP: 30, HP: 30, Power: 5, Defense: 2})
	w.Player = p
	return w
}

// addMonster adds a named fighting monster at (x, y).
func addMonster(w *world.World, name string, x, y int) ecs.EntityID {
	id := w.Spawn()
	w.Positions.Insert(id, component.Position{X: x, Y: y})
	w.Monsters.Insert(id, component.Monster{})
	w.Names.Insert(id, component.Name{Name: name})
	w.BlocksTiles.Insert(id, component.BlocksTile{})
	w.Viewsheds.Insert(id, component.Viewshed{Range: 8, Dirty: true})
	w.CombatStats.Insert(id, component.CombatStats{MaxHP: 16, HP: 16, Power: 4, Defense: 1})
	return id
}

// addItem adds a named item on the ground at (x, y).
func addItem(w *world.World, name string, x, y int) ecs.EntityID {
	id := w.Spawn()
	w.Positions.Insert(id, component.Position{X: x, Y: y})
	w.Items.Insert(id, component.Item{})
	w.Names.Insert(id, component.Name{Name: name})
	return id
}

// carry puts a fresh item straight into owner's backpack.
func carry(w *world.World, owner ecs.EntityID, name string) ecs.EntityID {
	id := w.Spawn()
	w.Items.Insert(id, component.Item{})
	w.Names.Insert(id, component.Name{Name: name})
	w.InBackpacks.Insert(id, component.InBackpack{Owner: owner})
	return id
}

// locations counts how many of the three ownership components item carries.
func locations(w *world.World, item ecs.EntityID) int {
	n := 0
	if w.Positions.Has(item) {
		n++
	}
	if w.InBackpacks.Has(item) {
		n++
	}
	if w.Equippeds.Has(item) {
		n++
	}
	return n
}

func containsEntity(ids []ecs.EntityID, id ecs.EntityID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
