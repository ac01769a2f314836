package system

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"

	"go.uber.org/zap"
)

// MeleeCombat turns melee intents into pending damage.
// Damage formula: max(1, power+bonus - (defense+bonus)).
type MeleeCombat struct{}

func (MeleeCombat) Name() string { return "melee_combat" }

func (MeleeCombat) Run(w *world.World) {
	w.WantsToMelees.Each(func(attacker ecs.EntityID, wm *component.WantsToMelee) {
		stats, ok := w.CombatStats.Get(attacker)
		if !ok || stats.HP <= 0 {
			return
		}
		if !w.ECS.Alive(wm.Target) {
			return
		}
		target, ok := w.CombatStats.Get(wm.Target)
		if !ok || target.HP <= 0 {
			return
		}
		power := stats.Power + powerBonus(w, attacker)
		defense := target.Defense + defenseBonus(w, wm.Target)
		dmg := max(1, power-defense)

		w.Log.Add("%s hits %s, for %d hp.", w.Name(attacker), w.Name(wm.Target), dmg)
		w.AddDamage(wm.Target, dmg)
	})
}

// powerBonus sums MeleePowerBonus over everything id has equipped.
func powerBonus(w *world.World, id ecs.EntityID) int {
	total := 0
	w.Equippeds.Each(func(item ecs.EntityID, eq *component.Equipped) {
		if eq.Owner != id {
			return
		}
		if b, ok := w.MeleePowerBonuses.Get(item); ok {
			total += b.Power
		}
	})
	return total
}

// defenseBonus sums DefenseBonus over everything id has equipped.
func defenseBonus(w *world.World, id ecs.EntityID) int {
	total := 0
	w.Equippeds.Each(func(item ecs.EntityID, eq *component.Equipped) {
		if eq.Owner != id {
			return
		}
		if b, ok := w.DefenseBonuses.Get(item); ok {
			total += b.Defense
		}
	})
	return total
}

// Damage applies the summed pending damage of the pass and clears it.
type Damage struct{}

func (Damage) Name() string { return "damage" }

func (Damage) Run(w *world.World) {
	w.SufferDamages.Each(func(id ecs.EntityID, sd *component.SufferDamage) {
		if stats := w.CombatStats.GetMut(id); stats != nil {
			stats.HP -= sd.Total()
		}
	})
	w.SufferDamages.Clear()
}

// DeleteTheDead queues every non-player actor at or below zero HP for
// deletion. The player dying raises PlayerDead instead.
type DeleteTheDead struct{}

func (DeleteTheDead) Name() string { return "delete_the_dead" }

func (DeleteTheDead) Run(w *world.World) {
	w.CombatStats.Each(func(id ecs.EntityID, stats *component.CombatStats) {
		if stats.HP > 0 {
			return
		}
		if w.IsPlayer(id) {
			if !w.PlayerDead {
				w.Log.Add("You are dead.")
				w.Logger.Info("player died", zap.Int("depth", w.Depth))
			}
			w.PlayerDead = true
			return
		}
		if n, ok := w.Names.Get(id); ok {
			w.Log.Add("%s is dead", n.Name)
		}
		w.Logger.Debug("entity died", entityField("entity", id))
		w.ECS.DestroyEntity(id)
	})
}
