package system

import (
	"testing"

	"delve-roguelike/internal/component"
)

func TestMapIndexingBlocksAndContent(t *testing.T) {
	w := newTestWorld(5, 5)
	potion := addItem(w, "Health Potion", 6, 5)
	MapIndexing{}.Run(w)

	m := w.Map
	if !m.Blocked[m.Index(5, 5)] {
		t.Error("player tile should be blocked")
	}
	if m.Blocked[m.Index(6, 5)] {
		t.Error("an item must not block its tile")
	}
	if !m.Blocked[m.Index(0, 0)] {
		t.Error("walls stay blocked")
	}
	if !containsEntity(m.TileContent[m.Index(6, 5)], potion) {
		t.Error("item should be indexed on its tile")
	}
}

func TestMapIndexingFreshness(t *testing.T) {
	w := newTestWorld(5, 5)
	MapIndexing{}.Run(w)
	m := w.Map
	old, next := m.Index(5, 5), m.Index(7, 8)

	w.Positions.Insert(w.Player, component.Position{X: 7, Y: 8})
	MapIndexing{}.Run(w)

	if containsEntity(m.TileContent[old], w.Player) {
		t.Error("old tile still lists the player")
	}
	if m.Blocked[old] {
		t.Error("old tile still blocked")
	}
	if !containsEntity(m.TileContent[next], w.Player) {
		t.Error("new tile does not list the player")
	}
}
