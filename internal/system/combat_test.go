package system

import (
	"testing"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/world"
)

func TestDamageSumsPendingEntries(t *testing.T) {
	w := newTestWorld(5, 5)
	orc := addMonster(w, "Orc", 6, 5)
	w.CombatStats.GetMut(orc).HP = 20
	w.SufferDamages.Insert(orc, component.SufferDamage{Amounts: []int{3, 4, 5}})

	Damage{}.Run(w)

	stats, _ := w.CombatStats.Get(orc)
	if stats.HP != 8 {
		t.Errorf("HP = %d; want 8 (20 - 3 - 4 - 5)", stats.HP)
	}
	if w.SufferDamages.Has(orc) {
		t.Error("SufferDamage must be removed after resolution")
	}
}

func TestDamageClearsEntitiesWithoutStats(t *testing.T) {
	w := newTestWorld(5, 5)
	potion := addItem(w, "Health Potion", 6, 5)
	w.AddDamage(potion, 5)
	Damage{}.Run(w)
	if w.SufferDamages.Len() != 0 {
		t.Fatal("damage on a statless entity must not dangle")
	}
}

func TestMeleeDamageFormula(t *testing.T) {
	cases := []struct {
		name           string
		power, defense int
		powerBonus     int
		defenseBonus   int
		want           int
	}{
		{"power beats defense", 5, 1, 0, 0, 4},
		{"floored at one", 2, 8, 0, 0, 1},
		{"weapon bonus", 5, 1, 4, 0, 8},
		{"shield bonus", 5, 1, 0, 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(5, 5)
			w.CombatStats.GetMut(w.Player).Power = tc.power
			orc := addMonster(w, "Orc", 6, 5)
			w.CombatStats.GetMut(orc).Defense = tc.defense
			if tc.powerBonus > 0 {
				sword := carry(w, w.Player, "Longsword")
				w.InBackpacks.Remove(sword)
				w.Equippeds.Insert(sword, component.Equipped{Owner: w.Player, Slot: component.SlotMelee})
				w.MeleePowerBonuses.Insert(sword, component.MeleePowerBonus{Power: tc.powerBonus})
			}
			if tc.defenseBonus > 0 {
				shield := carry(w, orc, "Shield")
				w.InBackpacks.Remove(shield)
				w.Equippeds.Insert(shield, component.Equipped{Owner: orc, Slot: component.SlotShield})
				w.DefenseBonuses.Insert(shield, component.DefenseBonus{Defense: tc.defenseBonus})
			}
			w.WantsToMelees.Insert(w.Player, component.WantsToMelee{Target: orc})

			MeleeCombat{}.Run(w)

			sd, ok := w.SufferDamages.Get(orc)
			if !ok || sd.Total() != tc.want {
				t.Fatalf("pending damage = %v; want %d", sd.Amounts, tc.want)
			}
		})
	}
}

func TestMeleeStaleTargetIsNoop(t *testing.T) {
	w := newTestWorld(5, 5)
	orc := addMonster(w, "Orc", 6, 5)
	w.ECS.DestroyEntity(orc)
	w.ECS.Maintain()
	w.WantsToMelees.Insert(w.Player, component.WantsToMelee{Target: orc})

	MeleeCombat{}.Run(w)

	if w.SufferDamages.Len() != 0 {
		t.Fatal("attacking a deleted entity must do nothing")
	}
}

func TestMeleeDeadAttackerDoesNothing(t *testing.T) {
	w := newTestWorld(5, 5)
	orc := addMonster(w, "Orc", 6, 5)
	w.CombatStats.GetMut(orc).HP = 0
	w.WantsToMelees.Insert(orc, component.WantsToMelee{Target: w.Player})
	MeleeCombat{}.Run(w)
	if w.SufferDamages.Has(w.Player) {
		t.Fatal("a dead attacker must not deal damage")
	}
}

func TestDeleteTheDeadRemovesMonsters(t *testing.T) {
	w := newTestWorld(5, 5)
	orc := addMonster(w, "Orc", 6, 5)
	w.CombatStats.GetMut(orc).HP = 0

	DeleteTheDead{}.Run(w)
	if !w.ECS.Alive(orc) {
		t.Fatal("deletion must be deferred until Maintain")
	}
	w.ECS.Maintain()
	if w.ECS.Alive(orc) {
		t.Fatal("dead monster should be deleted")
	}
	if w.PlayerDead {
		t.Fatal("player did not die")
	}
}

func TestDeleteTheDeadReportsPlayerDeath(t *testing.T) {
	w := newTestWorld(5, 5)
	orc := addMonster(w, "Orc", 6, 5)
	w.CombatStats.GetMut(w.Player).HP = 2
	w.CombatStats.GetMut(orc).Power = 10
	w.WantsToMelees.Insert(orc, component.WantsToMelee{Target: w.Player})
	w.RunState = world.State(world.ModeMonsterTurn)

	report := NewPipeline().Run(w)

	if !report.PlayerDied {
		t.Fatal("expected the pass to report player death")
	}
	if !w.ECS.Alive(w.Player) {
		t.Fatal("the player entity is never deleted")
	}
}
