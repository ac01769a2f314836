package component

import "delve-roguelike/internal/ecs"

// EquipmentSlot is where an equippable item is worn.
type EquipmentSlot uint8

const (
	SlotMelee EquipmentSlot = iota
	SlotShield
)

func (s EquipmentSlot) String() string {
	switch s {
	case SlotMelee:
		return "melee"
	case SlotShield:
		return "shield"
	}
	return "unknown"
}

// ParseSlot maps a slot name back to its value.
func ParseSlot(name string) (EquipmentSlot, bool) {
	switch name {
	case "melee":
		return SlotMelee, true
	case "shield":
		return SlotShield, true
	}
	return 0, false
}

// Equippable marks an item that can be worn in Slot.
type Equippable struct {
	Slot EquipmentSlot `json:"slot"`
}

// Equipped records that an item is worn by Owner.
type Equipped struct {
	Owner ecs.EntityID  `json:"owner"`
	Slot  EquipmentSlot `json:"slot"`
}

func (c *Equipped) RemapEntities(m ecs.EntityMapper) { c.Owner = m(c.Owner) }

// InBackpack records that an item is carried by Owner.
type InBackpack struct {
	Owner ecs.EntityID `json:"owner"`
}

func (c *InBackpack) RemapEntities(m ecs.EntityMapper) { c.Owner = m(c.Owner) }
