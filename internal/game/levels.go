package game

import (
	"fmt"

	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/generate"

	"go.uber.org/zap"
)

// buildLevel generates the map for the current depth and populates it.
func (g *Game) buildLevel() error {
	w := g.world
	cfg, err := generate.FromConfig(g.cfg.Map, w.RNG)
	if err != nil {
		return fmt.Errorf("level %d: %w", w.Depth, err)
	}
	w.Map = generate.Generate(cfg)
	g.spawner.PopulateLevel(w, g.cfg.Player)
	g.runLog.Depth = max(g.runLog.Depth, w.Depth)
	w.Log.Add("You enter %s.", g.templates.LevelName(w.Depth))
	g.logger.Debug("level built",
		zap.Int("depth", w.Depth),
		zap.Int("rooms", len(w.Map.Rooms)),
		zap.Int("entities", w.ECS.Len()))
	return nil
}

// levelLeavers returns every entity that does not follow the player down:
// everything except the player and the items it carries or wears.
func (g *Game) levelLeavers() []ecs.EntityID {
	w := g.world
	var out []ecs.EntityID
	for _, id := range w.ECS.Entities() {
		if id == w.Player || w.OwnedBy(id, w.Player) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// nextLevel moves the player one level deeper and lets them catch their
// breath.
func (g *Game) nextLevel() error {
	w := g.world
	for _, id := range g.levelLeavers() {
		w.ECS.DestroyEntity(id)
	}
	w.ECS.Maintain()
	w.Depth++
	if err := g.buildLevel(); err != nil {
		return err
	}
	w.Log.Add("You descend to the next level, and take a moment to heal.")
	if stats := w.CombatStats.GetMut(w.Player); stats != nil {
		stats.HP = max(stats.HP, stats.MaxHP/2)
	}
	return nil
}
