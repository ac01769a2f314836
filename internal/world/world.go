// Package world holds the explicit simulation context every system runs
// against: the entity store with one typed store per component, the map and
// the other shared resources of a run.
package world

import (
	"fmt"
	"math"
	"math/rand"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"

	"go.uber.org/zap"
)

// World is the context handed to every system.
type World struct {
	ECS *ecs.World

	Positions   *ecs.Store[component.Position]
	Renderables *ecs.Store[component.Renderable]
	Players     *ecs.Store[component.Player]
	Viewsheds   *ecs.Store[component.Viewshed]
	Monsters    *ecs.Store[component.Monster]
	Names       *ecs.Store[component.Name]
	BlocksTiles *ecs.Store[component.BlocksTile]
	CombatStats *ecs.Store[component.CombatStats]

	SufferDamages *ecs.Store[component.SufferDamage]
	WantsToMelees *ecs.Store[component.WantsToMelee]

	Items            *ecs.Store[component.Item]
	Consumables      *ecs.Store[component.Consumable]
	Rangeds          *ecs.Store[component.Ranged]
	InflictsDamages  *ecs.Store[component.InflictsDamage]
	AreasOfEffect    *ecs.Store[component.AreaOfEffect]
	Confusions       *ecs.Store[component.Confusion]
	ProvidesHealings *ecs.Store[component.ProvidesHealing]
	InBackpacks      *ecs.Store[component.InBackpack]
	Equippables      *ecs.Store[component.Equippable]
	Equippeds        *ecs.Store[component.Equipped]

	MeleePowerBonuses *ecs.Store[component.MeleePowerBonus]
	DefenseBonuses    *ecs.Store[component.DefenseBonus]

	WantsToPickUpItems *ecs.Store[component.WantsToPickUpItem]
	WantsToUseItems    *ecs.Store[component.WantsToUseItem]
	WantsToDropItems   *ecs.Store[component.WantsToDropItem]
	WantsToRemoveItems *ecs.Store[component.WantsToRemoveItem]

	SerializeMes         *ecs.Store[component.SerializeMe]
	SerializationHelpers *ecs.Store[component.SerializationHelper]

	Map      *gamemap.Map
	Log      *GameLog
	RNG      *rand.Rand
	RunState RunState
	Player   ecs.EntityID
	Depth    int

	// PlayerDead is raised by the death sweep and consumed by the game loop.
	PlayerDead bool

	Logger *zap.Logger
}

// New builds an empty world. A nil logger is replaced by a no-op one.
func New(rng *rand.Rand, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := ecs.NewWorld()
	return &World{
		ECS: e,

		Positions:   ecs.NewStore[component.Position](e, "Position"),
		Renderables: ecs.NewStore[component.Renderable](e, "Renderable"),
		Players:     ecs.NewStore[component.Player](e, "Player"),
		Viewsheds:   ecs.NewStore[component.Viewshed](e, "Viewshed"),
		Monsters:    ecs.NewStore[component.Monster](e, "Monster"),
		Names:       ecs.NewStore[component.Name](e, "Name"),
		BlocksTiles: ecs.NewStore[component.BlocksTile](e, "BlocksTile"),
		CombatStats: ecs.NewStore[component.CombatStats](e, "CombatStats"),

		SufferDamages: ecs.NewStore[component.SufferDamage](e, "SufferDamage"),
		WantsToMelees: ecs.NewStore[component.WantsToMelee](e, "WantsToMelee"),

		Items:            ecs.NewStore[component.Item](e, "Item"),
		Consumables:      ecs.NewStore[component.Consumable](e, "Consumable"),
		Rangeds:          ecs.NewStore[component.Ranged](e, "Ranged"),
		InflictsDamages:  ecs.NewStore[component.InflictsDamage](e, "InflictsDamage"),
		AreasOfEffect:    ecs.NewStore[component.AreaOfEffect](e, "AreaOfEffect"),
		Confusions:       ecs.NewStore[component.Confusion](e, "Confusion"),
		ProvidesHealings: ecs.NewStore[component.ProvidesHealing](e, "ProvidesHealing"),
		InBackpacks:      ecs.NewStore[component.InBackpack](e, "InBackpack"),
		Equippables:      ecs.NewStore[component.Equippable](e, "Equippable"),
		Equippeds:        ecs.NewStore[component.Equipped](e, "Equipped"),

		MeleePowerBonuses: ecs.NewStore[component.MeleePowerBonus](e, "MeleePowerBonus"),
		DefenseBonuses:    ecs.NewStore[component.DefenseBonus](e, "DefenseBonus"),

		WantsToPickUpItems: ecs.NewStore[component.WantsToPickUpItem](e, "WantsToPickUpItem"),
		WantsToUseItems:    ecs.NewStore[component.WantsToUseItem](e, "WantsToUseItem"),
		WantsToDropItems:   ecs.NewStore[component.WantsToDropItem](e, "WantsToDropItem"),
		WantsToRemoveItems: ecs.NewStore[component.WantsToRemoveItem](e, "WantsToRemoveItem"),

		SerializeMes:         ecs.NewStore[component.SerializeMe](e, "SerializeMe"),
		SerializationHelpers: ecs.NewStore[component.SerializationHelper](e, "SerializationHelper"),

		Log:      NewGameLog(0),
		RNG:      rng,
		RunState: State(ModeMainMenu),
		Depth:    1,
		Logger:   logger,
	}
}

// Name returns the display name of id. Every entity that can appear in a
// player-facing message carries one, so a missing name panics.
func (w *World) Name(id ecs.EntityID) string {
	n, ok := w.Names.Get(id)
	if !ok {
		panic(fmt.Sprintf("world: entity %d has no Name", id))
	}
	return n.Name
}

// IsPlayer reports whether id is the player entity.
func (w *World) IsPlayer(id ecs.EntityID) bool {
	return id != ecs.NilEntity && id == w.Player
}

// PlayerPosition returns the player's tile.
func (w *World) PlayerPosition() (component.Position, bool) {
	return w.Positions.Get(w.Player)
}

// AddDamage appends amount to victim's pending damage, creating the
// component when absent.
func (w *World) AddDamage(victim ecs.EntityID, amount int) {
	if sd := w.SufferDamages.GetMut(victim); sd != nil {
		sd.Amounts = append(sd.Amounts, amount)
		return
	}
	w.SufferDamages.Insert(victim, component.SufferDamage{Amounts: []int{amount}})
}

// Distance is the straight-line distance between two tiles.
func Distance(a, b component.Position) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// ClearIntents drops every one-shot command so none can fire twice.
func (w *World) ClearIntents() {
	w.WantsToMelees.Clear()
	w.WantsToPickUpItems.Clear()
	w.WantsToUseItems.Clear()
	w.WantsToDropItems.Clear()
	w.WantsToRemoveItems.Clear()
}

// Spawn creates an entity tagged for persistence.
func (w *World) Spawn() ecs.EntityID {
	id := w.ECS.CreateEntity()
	w.SerializeMes.Insert(id, component.SerializeMe{})
	return id
}

// OwnedBy reports whether item is carried or worn by owner.
func (w *World) OwnedBy(item, owner ecs.EntityID) bool {
	if bp, ok := w.InBackpacks.Get(item); ok && bp.Owner == owner {
		return true
	}
	if eq, ok := w.Equippeds.Get(item); ok && eq.Owner == owner {
		return true
	}
	return false
}

// Backpack returns the items carried by owner in entity order.
func (w *World) Backpack(owner ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range w.ECS.Entities() {
		if bp, ok := w.InBackpacks.Get(id); ok && bp.Owner == owner {
			out = append(out, id)
		}
	}
	return out
}

// EquippedBy returns the items worn by owner in entity order.
func (w *World) EquippedBy(owner ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range w.ECS.Entities() {
		if eq, ok := w.Equippeds.Get(id); ok && eq.Owner == owner {
			out = append(out, id)
		}
	}
	return out
}

// DeleteAll queues every entity for destruction and applies it.
func (w *World) DeleteAll() {
	for _, id := range w.ECS.Entities() {
		w.ECS.DestroyEntity(id)
	}
	w.ECS.Maintain()
}
