package factory

import (
	"math/rand"

	"delve-roguelike/internal/config"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/world"

	"go.uber.org/zap"
)

// Spawner populates rooms from the spawn table.
type Spawner struct {
	Templates        *Templates
	MaxMonsters      int
	MaxItems         int
	MonsterViewRange int
}

// NewSpawner builds a spawner from the [spawn] and [monster] settings.
func NewSpawner(t *Templates, cfg *config.Config) *Spawner {
	return &Spawner{
		Templates:        t,
		MaxMonsters:      cfg.Spawn.MaxMonsters,
		MaxItems:         cfg.Spawn.MaxItems,
		MonsterViewRange: cfg.Monster.ViewRange,
	}
}

// SpawnRoom places 0..MaxMonsters monsters and 0..MaxItems items on
// distinct floor tiles of room.
func (s *Spawner) SpawnRoom(w *world.World, room gamemap.Rect, depth int) {
	free := floorTiles(w.Map, room)
	w.RNG.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	take := func() (gamemap.Point, bool) {
		if len(free) == 0 {
			return gamemap.Point{}, false
		}
		p := free[len(free)-1]
		free = free[:len(free)-1]
		return p, true
	}

	monsters := w.RNG.Intn(s.MaxMonsters + 1)
	for i := 0; i < monsters; i++ {
		tpl, ok := pick(w.RNG, s.Templates.Monsters, depth, func(m MonsterTemplate) (int, int) { return m.Weight, m.DepthWeight })
		if !ok {
			break
		}
		p, ok := take()
		if !ok {
			return
		}
		NewMonster(w, tpl, p.X, p.Y, s.MonsterViewRange)
	}

	items := w.RNG.Intn(s.MaxItems + 1)
	for i := 0; i < items; i++ {
		tpl, ok := pick(w.RNG, s.Templates.Items, depth, func(it ItemTemplate) (int, int) { return it.Weight, it.DepthWeight })
		if !ok {
			break
		}
		p, ok := take()
		if !ok {
			return
		}
		NewItem(w, tpl, p.X, p.Y)
	}
	w.Logger.Debug("room populated",
		zap.Int("monsters", monsters), zap.Int("items", items), zap.Int("depth", depth))
}

// PopulateLevel places the player in the first room and fills every other
// room. The player entity is created when it does not exist yet.
func (s *Spawner) PopulateLevel(w *world.World, cfg config.PlayerConfig) {
	rooms := w.Map.Rooms
	px, py := rooms[0].Center()
	if w.ECS.Alive(w.Player) {
		pos := w.Positions.GetMut(w.Player)
		if pos == nil {
			panic("factory: player has no position")
		}
		pos.X, pos.Y = px, py
		if vs := w.Viewsheds.GetMut(w.Player); vs != nil {
			vs.Dirty = true
		}
	} else {
		NewPlayer(w, px, py, cfg, s.Templates.Player)
	}
	for _, room := range rooms[1:] {
		s.SpawnRoom(w, room, w.Depth)
	}
}

// floorTiles lists the walkable tiles inside room, skipping stairs.
func floorTiles(m *gamemap.Map, room gamemap.Rect) []gamemap.Point {
	var out []gamemap.Point
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			if m.InBounds(x, y) && m.At(x, y) == gamemap.TileFloor {
				out = append(out, gamemap.Point{X: x, Y: y})
			}
		}
	}
	return out
}

// pick draws one entry using depth-adjusted weights.
func pick[T any](rng *rand.Rand, entries []T, depth int, weights func(T) (int, int)) (T, bool) {
	total := 0
	for _, e := range entries {
		base, perDepth := weights(e)
		total += max(0, base+perDepth*depth)
	}
	var zero T
	if total == 0 {
		return zero, false
	}
	roll := rng.Intn(total)
	for _, e := range entries {
		base, perDepth := weights(e)
		wgt := max(0, base+perDepth*depth)
		if roll < wgt {
			return e, true
		}
		roll -= wgt
	}
	return zero, false
}
