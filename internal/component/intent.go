package component

import (
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"
)

// The intents below are one-shot commands written by the input adapter or
// the monster AI and cleared at the end of the pass that sees them.

type WantsToPickUpItem struct {
	CollectedBy ecs.EntityID `json:"collected_by"`
	Item        ecs.EntityID `json:"item"`
}

func (c *WantsToPickUpItem) RemapEntities(m ecs.EntityMapper) {
	c.CollectedBy = m(c.CollectedBy)
	c.Item = m(c.Item)
}

// WantsToUseItem targets the user when Target is nil.
type WantsToUseItem struct {
	Item   ecs.EntityID   `json:"item"`
	Target *gamemap.Point `json:"target,omitempty"`
}

func (c *WantsToUseItem) RemapEntities(m ecs.EntityMapper) { c.Item = m(c.Item) }

type WantsToDropItem struct {
	Item ecs.EntityID `json:"item"`
}

func (c *WantsToDropItem) RemapEntities(m ecs.EntityMapper) { c.Item = m(c.Item) }

type WantsToRemoveItem struct {
	Item ecs.EntityID `json:"item"`
}

func (c *WantsToRemoveItem) RemapEntities(m ecs.EntityMapper) { c.Item = m(c.Item) }
