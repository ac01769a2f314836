package component

import (
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"
)

// EntityRefs is implemented by components that embed entity handles, so the
// save file can translate them to markers and back.
type EntityRefs interface {
	RemapEntities(m ecs.EntityMapper)
}

// SerializationHelper carries the level state through the save file on a
// transient entity. It only exists while saving or loading.
type SerializationHelper struct {
	Map   *gamemap.Map `json:"map"`
	Depth int          `json:"depth"`
}
