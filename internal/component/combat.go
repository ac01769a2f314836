package component

import "delve-roguelike/internal/ecs"

// CombatStats holds the fighting numbers of an actor.
type CombatStats struct {
	MaxHP   int `json:"max_hp"`
	HP      int `json:"hp"`
	Power   int `json:"power"`
	Defense int `json:"defense"`
}

// Heal raises HP by amount, never above MaxHP.
func (c *CombatStats) Heal(amount int) {
	c.HP = min(c.HP+amount, c.MaxHP)
}

// SufferDamage accumulates every hit taken during one pass. The damage
// system sums and clears it.
type SufferDamage struct {
	Amounts []int `json:"amounts"`
}

// Total returns the sum of every pending hit.
func (s SufferDamage) Total() int {
	total := 0
	for _, a := range s.Amounts {
		total += a
	}
	return total
}

// WantsToMelee is a one-turn intent to attack Target.
type WantsToMelee struct {
	Target ecs.EntityID `json:"target"`
}

func (c *WantsToMelee) RemapEntities(m ecs.EntityMapper) { c.Target = m(c.Target) }

// MeleePowerBonus adds to the wearer's power while equipped.
type MeleePowerBonus struct {
	Power int `json:"power"`
}

// DefenseBonus adds to the wearer's defense while equipped.
type DefenseBonus struct {
	Defense int `json:"defense"`
}
