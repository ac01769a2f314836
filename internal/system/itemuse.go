package system

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"

	"go.uber.org/zap"
)

// EffectKind tags one effect an item produces when used.
type EffectKind uint8

const (
	EffectEquip EffectKind = iota
	EffectHealing
	EffectDamage
	EffectConfusion
)

// Effect is one entry of an item's effect list. Amount holds the healing,
// damage or confusion turns; Slot is only meaningful for EffectEquip.
type Effect struct {
	Kind   EffectKind
	Amount int
	Slot   component.EquipmentSlot
}

// ItemEffects lists every effect item carries, in application order.
func ItemEffects(w *world.World, item ecs.EntityID) []Effect {
	var effects []Effect
	if e, ok := w.Equippables.Get(item); ok {
		effects = append(effects, Effect{Kind: EffectEquip, Slot: e.Slot})
	}
	if h, ok := w.ProvidesHealings.Get(item); ok {
		effects = append(effects, Effect{Kind: EffectHealing, Amount: h.Amount})
	}
	if d, ok := w.InflictsDamages.Get(item); ok {
		effects = append(effects, Effect{Kind: EffectDamage, Amount: d.Amount})
	}
	if c, ok := w.Confusions.Get(item); ok {
		effects = append(effects, Effect{Kind: EffectConfusion, Amount: c.Turns})
	}
	return effects
}

// ItemUse resolves use intents: it finds the targets, applies every effect
// of the item to them and consumes the item when something took effect.
type ItemUse struct{}

func (ItemUse) Name() string { return "item_use" }

func (ItemUse) Run(w *world.World) {
	w.WantsToUseItems.Each(func(user ecs.EntityID, use *component.WantsToUseItem) {
		if !w.ECS.Alive(use.Item) {
			return
		}
		targets := useTargets(w, user, use)

		used := false
		for _, e := range ItemEffects(w, use.Item) {
			if applyEffect(w, user, use.Item, e, targets) {
				used = true
			}
		}
		if used && w.Consumables.Has(use.Item) {
			w.ECS.DestroyEntity(use.Item)
			w.Logger.Debug("item consumed", entityField("item", use.Item), entityField("user", user))
		}
	})
}

// useTargets resolves who an item affects. No target tile means the user;
// a tile means its occupants; an area item hits every occupant of the
// field-of-view disc around the tile, clipped to the map interior.
func useTargets(w *world.World, user ecs.EntityID, use *component.WantsToUseItem) []ecs.EntityID {
	if use.Target == nil {
		return []ecs.EntityID{user}
	}
	m := w.Map
	t := *use.Target
	if !m.InBounds(t.X, t.Y) {
		return nil
	}

	var targets []ecs.EntityID
	collect := func(idx int) {
		for _, id := range m.TileContent[idx] {
			if w.ECS.Alive(id) {
				targets = append(targets, id)
			}
		}
	}
	aoe, ok := w.AreasOfEffect.Get(use.Item)
	if !ok {
		collect(m.Index(t.X, t.Y))
		return targets
	}
	for _, p := range m.FieldOfView(t, aoe.Radius) {
		if p.X > 0 && p.X < m.Width-1 && p.Y > 0 && p.Y < m.Height-1 {
			collect(m.Index(p.X, p.Y))
		}
	}
	return targets
}

// applyEffect reports whether e took effect on at least one target.
func applyEffect(w *world.World, user, item ecs.EntityID, e Effect, targets []ecs.EntityID) bool {
	if len(targets) == 0 {
		return false
	}
	byPlayer := w.IsPlayer(user)

	switch e.Kind {
	case EffectEquip:
		equip(w, item, e.Slot, targets[0])
		return true

	case EffectHealing:
		applied := false
		for _, t := range targets {
			stats := w.CombatStats.GetMut(t)
			if stats == nil {
				continue
			}
			stats.Heal(e.Amount)
			applied = true
			if byPlayer {
				w.Log.Add("You use the %s, healing %d hp.", w.Name(item), e.Amount)
			}
		}
		return applied

	case EffectDamage:
		for _, t := range targets {
			w.AddDamage(t, e.Amount)
			if byPlayer {
				w.Log.Add("You use %s on %s, inflicting %d hp.", w.Name(item), w.Name(t), e.Amount)
			}
		}
		return true

	case EffectConfusion:
		for _, t := range targets {
			// Only actors can be confused; an item in the blast keeps its own effects.
			if !w.CombatStats.Has(t) {
				continue
			}
			w.Confusions.Insert(t, component.Confusion{Turns: e.Amount})
			if byPlayer {
				w.Log.Add("You use %s on %s, confusing them.", w.Name(item), w.Name(t))
			}
		}
		return true
	}
	w.Logger.Warn("unknown item effect", zap.Uint8("kind", uint8(e.Kind)))
	return false
}

// equip puts item on owner, swapping out whatever owner wore in the slot.
func equip(w *world.World, item ecs.EntityID, slot component.EquipmentSlot, owner ecs.EntityID) {
	w.Equippeds.Each(func(worn ecs.EntityID, eq *component.Equipped) {
		if worn == item || eq.Owner != owner || eq.Slot != slot {
			return
		}
		w.Equippeds.Remove(worn)
		w.InBackpacks.Insert(worn, component.InBackpack{Owner: owner})
		if w.IsPlayer(owner) {
			w.Log.Add("You unequip %s.", w.Name(worn))
		}
	})
	w.Positions.Remove(item)
	w.InBackpacks.Remove(item)
	w.Equippeds.Insert(item, component.Equipped{Owner: owner, Slot: slot})
	if w.IsPlayer(owner) {
		w.Log.Add("You equip %s.", w.Name(item))
	}
}
