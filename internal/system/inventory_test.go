package system

import (
	"testing"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/world"
)

func TestPickupMovesItemToBackpack(t *testing.T) {
	w := newTestWorld(5, 5)
	potion := addItem(w, "Health Potion", 5, 5)
	w.WantsToPickUpItems.Insert(w.Player, component.WantsToPickUpItem{CollectedBy: w.Player, Item: potion})

	Pickup{}.Run(w)

	if w.Positions.Has(potion) {
		t.Fatal("picked up item keeps its ground position")
	}
	if bp, ok := w.InBackpacks.Get(potion); !ok || bp.Owner != w.Player {
		t.Fatal("item should be in the player's backpack")
	}
	if locations(w, potion) != 1 {
		t.Fatal("item must have exactly one owner")
	}
	if got := w.Log.Entries(); len(got) != 1 || got[0] != "You pick up the Health Potion." {
		t.Fatalf("log = %q", got)
	}
}

func TestDropPlacesItemAtDropper(t *testing.T) {
	w := newTestWorld(5, 5)
	potion := carry(w, w.Player, "Health Potion")
	w.WantsToDropItems.Insert(w.Player, component.WantsToDropItem{Item: potion})

	ItemDrop{}.Run(w)

	pos, ok := w.Positions.Get(potion)
	if !ok || pos.X != 5 || pos.Y != 5 {
		t.Fatalf("dropped item at %+v,%v; want (5,5)", pos, ok)
	}
	if locations(w, potion) != 1 {
		t.Fatal("item must have exactly one owner")
	}
}

func TestDropEquippedItem(t *testing.T) {
	w := newTestWorld(5, 5)
	sword := carry(w, w.Player, "Longsword")
	w.InBackpacks.Remove(sword)
	w.Equippeds.Insert(sword, component.Equipped{Owner: w.Player, Slot: component.SlotMelee})
	w.WantsToDropItems.Insert(w.Player, component.WantsToDropItem{Item: sword})

	ItemDrop{}.Run(w)

	if w.Equippeds.Has(sword) || !w.Positions.Has(sword) || locations(w, sword) != 1 {
		t.Fatal("dropping a worn item unequips it onto the ground")
	}
}

func TestDropSomeoneElsesItemIsNoop(t *testing.T) {
	w := newTestWorld(5, 5)
	orc := addMonster(w, "Orc", 6, 5)
	club := carry(w, orc, "Club")
	w.WantsToDropItems.Insert(w.Player, component.WantsToDropItem{Item: club})

	ItemDrop{}.Run(w)

	if w.Positions.Has(club) {
		t.Fatal("cannot drop an item one does not own")
	}
}

func TestRemoveReturnsItemToBackpack(t *testing.T) {
	w := newTestWorld(5, 5)
	shield := carry(w, w.Player, "Shield")
	w.InBackpacks.Remove(shield)
	w.Equippeds.Insert(shield, component.Equipped{Owner: w.Player, Slot: component.SlotShield})
	w.WantsToRemoveItems.Insert(w.Player, component.WantsToRemoveItem{Item: shield})

	ItemRemove{}.Run(w)

	if w.Equippeds.Has(shield) {
		t.Fatal("shield should no longer be equipped")
	}
	if bp, ok := w.InBackpacks.Get(shield); !ok || bp.Owner != w.Player {
		t.Fatal("shield should be back in the backpack")
	}
}

func TestPipelineClearsIntents(t *testing.T) {
	w := newTestWorld(5, 5)
	potion := addItem(w, "Health Potion", 5, 5)
	w.WantsToPickUpItems.Insert(w.Player, component.WantsToPickUpItem{CollectedBy: w.Player, Item: potion})
	w.RunState = world.State(world.ModePlayerTurn)
	p := NewPipeline()

	p.Run(w)
	intents := w.WantsToMelees.Len() + w.WantsToPickUpItems.Len() + w.WantsToUseItems.Len() +
		w.WantsToDropItems.Len() + w.WantsToRemoveItems.Len()
	if intents != 0 {
		t.Fatalf("%d intents survived the pass", intents)
	}

	logLen := len(w.Log.Entries())
	entities := w.ECS.Len()
	p.Run(w)
	if len(w.Log.Entries()) != logLen || w.ECS.Len() != entities {
		t.Fatal("a second pass without new intents must change nothing")
	}
	if bp, ok := w.InBackpacks.Get(potion); !ok || bp.Owner != w.Player {
		t.Fatal("item should stay in the backpack")
	}
}

func TestPipelineOrder(t *testing.T) {
	want := []string{
		"visibility", "monster_ai", "map_indexing", "melee_combat", "damage",
		"delete_the_dead", "pickup", "item_use", "item_drop", "item_remove",
	}
	systems := NewPipeline().Systems()
	if len(systems) != len(want) {
		t.Fatalf("pipeline has %d systems; want %d", len(systems), len(want))
	}
	for i, s := range systems {
		if s.Name() != want[i] {
			t.Errorf("system %d = %s; want %s", i, s.Name(), want[i])
		}
	}
}
