package saveload

import (
	"encoding/json"
	"fmt"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"
)

// componentArray is one component type in the save file: Values[i] belongs
// to the entity saved under Markers[i].
type componentArray struct {
	Type    string          `json:"type"`
	Markers []uint64        `json:"markers"`
	Values  json.RawMessage `json:"values"`
}

type codec interface {
	name() string
	save(w *world.World, tagged []ecs.EntityID, toMarker ecs.EntityMapper) (componentArray, error)
	load(w *world.World, arr componentArray, fromMarker ecs.EntityMapper) error
}

type storeCodec[T any] struct {
	store func(*world.World) *ecs.Store[T]
	label string
}

func newCodec[T any](label string, store func(*world.World) *ecs.Store[T]) codec {
	return storeCodec[T]{store: store, label: label}
}

func (c storeCodec[T]) name() string { return c.label }

func (c storeCodec[T]) save(w *world.World, tagged []ecs.EntityID, toMarker ecs.EntityMapper) (componentArray, error) {
	s := c.store(w)
	arr := componentArray{Type: c.label, Markers: []uint64{}}
	values := []T{}
	for _, id := range tagged {
		v, ok := s.Get(id)
		if !ok {
			continue
		}
		if refs, ok := any(&v).(component.EntityRefs); ok {
			refs.RemapEntities(toMarker)
		}
		arr.Markers = append(arr.Markers, uint64(toMarker(id)))
		values = append(values, v)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return arr, fmt.Errorf("encode %s: %w", c.label, err)
	}
	arr.Values = raw
	return arr, nil
}

func (c storeCodec[T]) load(w *world.World, arr componentArray, fromMarker ecs.EntityMapper) error {
	var values []T
	if err := json.Unmarshal(arr.Values, &values); err != nil {
		return fmt.Errorf("decode %s: %w", c.label, err)
	}
	if len(values) != len(arr.Markers) {
		return fmt.Errorf("decode %s: %d markers for %d values", c.label, len(arr.Markers), len(values))
	}
	s := c.store(w)
	for i := range values {
		owner := fromMarker(ecs.EntityID(arr.Markers[i]))
		if owner == ecs.NilEntity {
			return fmt.Errorf("decode %s: unknown marker %d", c.label, arr.Markers[i])
		}
		v := values[i]
		if refs, ok := any(&v).(component.EntityRefs); ok {
			refs.RemapEntities(fromMarker)
		}
		s.Insert(owner, v)
	}
	return nil
}

// codecs lists every persisted component type in save-file order.
var codecs = []codec{
	newCodec("Position", func(w *world.World) *ecs.Store[component.Position] { return w.Positions }),
	newCodec("Renderable", func(w *world.World) *ecs.Store[component.Renderable] { return w.Renderables }),
	newCodec("Player", func(w *world.World) *ecs.Store[component.Player] { return w.Players }),
	newCodec("Viewshed", func(w *world.World) *ecs.Store[component.Viewshed] { return w.Viewsheds }),
	newCodec("Monster", func(w *world.World) *ecs.Store[component.Monster] { return w.Monsters }),
	newCodec("Name", func(w *world.World) *ecs.Store[component.Name] { return w.Names }),
	newCodec("BlocksTile", func(w *world.World) *ecs.Store[component.BlocksTile] { return w.BlocksTiles }),
	newCodec("CombatStats", func(w *world.World) *ecs.Store[component.CombatStats] { return w.CombatStats }),
	newCodec("SufferDamage", func(w *world.World) *ecs.Store[component.SufferDamage] { return w.SufferDamages }),
	newCodec("WantsToMelee", func(w *world.World) *ecs.Store[component.WantsToMelee] { return w.WantsToMelees }),
	newCodec("Item", func(w *world.World) *ecs.Store[component.Item] { return w.Items }),
	newCodec("Consumable", func(w *world.World) *ecs.Store[component.Consumable] { return w.Consumables }),
	newCodec("Ranged", func(w *world.World) *ecs.Store[component.Ranged] { return w.Rangeds }),
	newCodec("InflictsDamage", func(w *world.World) *ecs.Store[component.InflictsDamage] { return w.InflictsDamages }),
	newCodec("AreaOfEffect", func(w *world.World) *ecs.Store[component.AreaOfEffect] { return w.AreasOfEffect }),
	newCodec("Confusion", func(w *world.World) *ecs.Store[component.Confusion] { return w.Confusions }),
	newCodec("ProvidesHealing", func(w *world.World) *ecs.Store[component.ProvidesHealing] { return w.ProvidesHealings }),
	newCodec("InBackpack", func(w *world.World) *ecs.Store[component.InBackpack] { return w.InBackpacks }),
	newCodec("WantsToPickUpItem", func(w *world.World) *ecs.Store[component.WantsToPickUpItem] { return w.WantsToPickUpItems }),
	newCodec("WantsToUseItem", func(w *world.World) *ecs.Store[component.WantsToUseItem] { return w.WantsToUseItems }),
	newCodec("WantsToDropItem", func(w *world.World) *ecs.Store[component.WantsToDropItem] { return w.WantsToDropItems }),
	newCodec("Equippable", func(w *world.World) *ecs.Store[component.Equippable] { return w.Equippables }),
	newCodec("Equipped", func(w *world.World) *ecs.Store[component.Equipped] { return w.Equippeds }),
	newCodec("MeleePowerBonus", func(w *world.World) *ecs.Store[component.MeleePowerBonus] { return w.MeleePowerBonuses }),
	newCodec("DefenseBonus", func(w *world.World) *ecs.Store[component.DefenseBonus] { return w.DefenseBonuses }),
	newCodec("WantsToRemoveItem", func(w *world.World) *ecs.Store[component.WantsToRemoveItem] { return w.WantsToRemoveItems }),
	newCodec("SerializationHelper", func(w *world.World) *ecs.Store[component.SerializationHelper] { return w.SerializationHelpers }),
}
