package factory

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/config"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
)

// Render orders: lower draws on top.
const (
	orderPlayer  = 0
	orderMonster = 1
	orderItem    = 2
)

// NewPlayer creates the player entity at (x, y) and records it on the world.
func NewPlayer(w *world.World, x, y int, cfg config.PlayerConfig, tpl PlayerTemplate) ecs.EntityID {
	id := w.Spawn()
	w.Positions.Insert(id, component.Position{X: x, Y: y})
	w.Renderables.Insert(id, component.Renderable{
		Glyph:       tpl.Glyph,
		FG:          color(tpl.FG),
		BG:          tcell.ColorBlack,
		RenderOrder: orderPlayer,
	})
	w.Players.Insert(id, component.Player{})
	w.Viewsheds.Insert(id, component.Viewshed{Range: cfg.ViewRange, Dirty: true})
	w.Names.Insert(id, component.Name{Name: tpl.Name})
	w.CombatStats.Insert(id, component.CombatStats{
		MaxHP:   cfg.HP,
		HP:      cfg.HP,
		Power:   cfg.Power,
		Defense: cfg.Defense,
	})
	w.BlocksTiles.Insert(id, component.BlocksTile{})
	w.Player = id
	return id
}

// NewMonster creates a monster from its template.
func NewMonster(w *world.World, tpl MonsterTemplate, x, y, viewRange int) ecs.EntityID {
	id := w.Spawn()
	w.Positions.Insert(id, component.Position{X: x, Y: y})
	w.Renderables.Insert(id, component.Renderable{
		Glyph:       tpl.Glyph,
		FG:          color(tpl.FG),
		BG:          tcell.ColorBlack,
		RenderOrder: orderMonster,
	})
	w.Viewsheds.Insert(id, component.Viewshed{Range: viewRange, Dirty: true})
	w.Monsters.Insert(id, component.Monster{})
	w.Names.Insert(id, component.Name{Name: tpl.Name})
	w.BlocksTiles.Insert(id, component.BlocksTile{})
	w.CombatStats.Insert(id, component.CombatStats{
		MaxHP:   tpl.HP,
		HP:      tpl.HP,
		Power:   tpl.Power,
		Defense: tpl.Defense,
	})
	return id
}

// NewItem creates an item lying on the ground at (x, y).
func NewItem(w *world.World, tpl ItemTemplate, x, y int) ecs.EntityID {
	id := newItem(w, tpl)
	w.Positions.Insert(id, component.Position{X: x, Y: y})
	return id
}

// NewCarriedItem creates an item directly in owner's backpack.
func NewCarriedItem(w *world.World, tpl ItemTemplate, owner ecs.EntityID) ecs.EntityID {
	id := newItem(w, tpl)
	w.InBackpacks.Insert(id, component.InBackpack{Owner: owner})
	return id
}

func newItem(w *world.World, tpl ItemTemplate) ecs.EntityID {
	id := w.Spawn()
	w.Renderables.Insert(id, component.Renderable{
		Glyph:       tpl.Glyph,
		FG:          color(tpl.FG),
		BG:          tcell.ColorBlack,
		RenderOrder: orderItem,
	})
	w.Names.Insert(id, component.Name{Name: tpl.Name})
	w.Items.Insert(id, component.Item{})
	if tpl.Consumable {
		w.Consumables.Insert(id, component.Consumable{})
	}
	if tpl.Healing > 0 {
		w.ProvidesHealings.Insert(id, component.ProvidesHealing{Amount: tpl.Healing})
	}
	if tpl.Damage > 0 {
		w.InflictsDamages.Insert(id, component.InflictsDamage{Amount: tpl.Damage})
	}
	if tpl.Radius > 0 {
		w.AreasOfEffect.Insert(id, component.AreaOfEffect{Radius: tpl.Radius})
	}
	if tpl.Confusion > 0 {
		w.Confusions.Insert(id, component.Confusion{Turns: tpl.Confusion})
	}
	if tpl.Range > 0 {
		w.Rangeds.Insert(id, component.Ranged{Range: tpl.Range})
	}
	if slot, ok := component.ParseSlot(tpl.Slot); ok {
		w.Equippables.Insert(id, component.Equippable{Slot: slot})
	}
	if tpl.PowerBonus != 0 {
		w.MeleePowerBonuses.Insert(id, component.MeleePowerBonus{Power: tpl.PowerBonus})
	}
	if tpl.DefenseBonus != 0 {
		w.DefenseBonuses.Insert(id, component.DefenseBonus{Defense: tpl.DefenseBonus})
	}
	return id
}
