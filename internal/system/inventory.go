package system

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"
)

// Pickup moves items from the ground into the collector's backpack.
type Pickup struct{}

func (Pickup) Name() string { return "pickup" }

func (Pickup) Run(w *world.World) {
	w.WantsToPickUpItems.Each(func(_ ecs.EntityID, p *component.WantsToPickUpItem) {
		if !w.ECS.Alive(p.Item) || !w.ECS.Alive(p.CollectedBy) {
			return
		}
		// Already collected by an earlier intent this pass.
		if !w.Positions.Has(p.Item) {
			return
		}
		w.Positions.Remove(p.Item)
		w.InBackpacks.Insert(p.Item, component.InBackpack{Owner: p.CollectedBy})
		if w.IsPlayer(p.CollectedBy) {
			w.Log.Add("You pick up the %s.", w.Name(p.Item))
		}
	})
}

// ItemDrop puts carried or worn items on the ground at the dropper's tile.
type ItemDrop struct{}

func (ItemDrop) Name() string { return "item_drop" }

func (ItemDrop) Run(w *world.World) {
	w.WantsToDropItems.Each(func(dropper ecs.EntityID, d *component.WantsToDropItem) {
		if !w.ECS.Alive(d.Item) || !w.OwnedBy(d.Item, dropper) {
			return
		}
		pos, ok := w.Positions.Get(dropper)
		if !ok {
			return
		}
		w.InBackpacks.Remove(d.Item)
		w.Equippeds.Remove(d.Item)
		w.Positions.Insert(d.Item, pos)
		if w.IsPlayer(dropper) {
			w.Log.Add("You drop the %s.", w.Name(d.Item))
		}
	})
}

// ItemRemove takes off an equipped item and returns it to the backpack.
type ItemRemove struct{}

func (ItemRemove) Name() string { return "item_remove" }

func (ItemRemove) Run(w *world.World) {
	w.WantsToRemoveItems.Each(func(owner ecs.EntityID, r *component.WantsToRemoveItem) {
		eq, ok := w.Equippeds.Get(r.Item)
		if !ok || eq.Owner != owner {
			return
		}
		w.Equippeds.Remove(r.Item)
		w.InBackpacks.Insert(r.Item, component.InBackpack{Owner: owner})
		if w.IsPlayer(owner) {
			w.Log.Add("You unequip %s.", w.Name(r.Item))
		}
	})
}
