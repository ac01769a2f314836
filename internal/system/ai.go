package system

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/world"

	"go.uber.org/zap"
)

// meleeReach is the distance under which a monster attacks instead of moving.
const meleeReach = 1.5

// MonsterAI decides what every monster does on the monster turn. A confused
// monster loses its turn; an adjacent one attacks; one that can see the
// player walks one step along the shortest path towards them.
type MonsterAI struct{}

func (MonsterAI) Name() string { return "monster_ai" }

func (MonsterAI) Run(w *world.World) {
	if w.RunState.Mode != world.ModeMonsterTurn {
		return
	}
	playerPos, ok := w.PlayerPosition()
	if !ok {
		return
	}
	m := w.Map

	for _, id := range ecs.Join(w.Monsters, w.Viewsheds, w.Positions) {
		if conf := w.Confusions.GetMut(id); conf != nil {
			conf.Turns--
			if conf.Turns < 1 {
				w.Confusions.Remove(id)
			}
			w.Logger.Debug("monster confused", entityField("entity", id))
			continue
		}

		pos := w.Positions.GetMut(id)
		if world.Distance(*pos, playerPos) < meleeReach {
			w.WantsToMelees.Insert(id, component.WantsToMelee{Target: w.Player})
			continue
		}

		vs := w.Viewsheds.GetMut(id)
		if !vs.CanSee(playerPos.Point()) {
			continue
		}
		from := m.Index(pos.X, pos.Y)
		path := m.FindPath(from, m.Index(playerPos.X, playerPos.Y))
		if !path.Success || len(path.Steps) < 2 {
			continue
		}
		next := path.Steps[1]
		m.Blocked[from] = false
		pos.X, pos.Y = m.XY(next)
		m.Blocked[next] = true
		vs.Dirty = true
		w.Logger.Debug("monster moved",
			entityField("entity", id),
			zap.Int("x", pos.X), zap.Int("y", pos.Y))
	}
}
