// Package system holds the resolution systems and the ordered pipeline that
// runs them once per pass.
package system

import (
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"

	"go.uber.org/zap"
)

// System is one resolution step of a pass.
type System interface {
	Name() string
	Run(w *world.World)
}

// Report summarises a finished pass.
type Report struct {
	PlayerDied bool
	Destroyed  int
}

// Pipeline runs a fixed list of systems in order.
type Pipeline struct {
	systems []System
}

// NewPipeline returns the standard pass order.
func NewPipeline() *Pipeline {
	return &Pipeline{systems: []System{
		Visibility{},
		MonsterAI{},
		MapIndexing{},
		MeleeCombat{},
		Damage{},
		DeleteTheDead{},
		Pickup{},
		ItemUse{},
		ItemDrop{},
		ItemRemove{},
	}}
}

// Systems returns the systems in execution order.
func (p *Pipeline) Systems() []System { return p.systems }

// Run executes every system once, clears all intents, then applies the
// deferred deletions queued during the pass.
func (p *Pipeline) Run(w *world.World) Report {
	for _, s := range p.systems {
		s.Run(w)
	}
	w.ClearIntents()
	destroyed := w.ECS.Maintain()
	if destroyed > 0 {
		w.Logger.Debug("pass complete",
			zap.Stringer("state", w.RunState),
			zap.Int("destroyed", destroyed))
	}
	return Report{PlayerDied: w.PlayerDead, Destroyed: destroyed}
}

func entityField(key string, id ecs.EntityID) zap.Field {
	return zap.Uint64(key, uint64(id))
}
