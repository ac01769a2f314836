package generate

import (
	"math/rand"

	"delve-roguelike/internal/gamemap"
)

// region is one node of the partition tree. Leaves hold at most one room.
type region struct {
	x, y, w, h int
	kids       [2]*region
}

func (r *region) leaf() bool { return r.kids[0] == nil }

// cut splits r in two. Regions clearly wider than tall are cut across
// their width and vice versa; near-square ones pick at random. It fails
// when either half would fall under MinLeafSize.
func (r *region) cut(cfg *Config) bool {
	acrossWidth := cfg.Rand.Intn(2) == 0
	switch {
	case r.w*4 >= r.h*5:
		acrossWidth = true
	case r.h*4 >= r.w*5:
		acrossWidth = false
	}
	span := r.h
	if acrossWidth {
		span = r.w
	}
	if span <= 2*cfg.MinLeafSize {
		return false
	}
	at := between(cfg.Rand, cfg.MinLeafSize, span-cfg.MinLeafSize)
	if acrossWidth {
		r.kids[0] = &region{x: r.x, y: r.y, w: at, h: r.h}
		r.kids[1] = &region{x: r.x + at, y: r.y, w: r.w - at, h: r.h}
	} else {
		r.kids[0] = &region{x: r.x, y: r.y, w: r.w, h: at}
		r.kids[1] = &region{x: r.x, y: r.y + at, w: r.w, h: r.h - at}
	}
	return true
}

// partition keeps cutting oversized regions, and most others, until the
// pieces get too small.
func (r *region) partition(cfg *Config) {
	oversized := r.w > cfg.MaxLeafSize || r.h > cfg.MaxLeafSize
	if !oversized && cfg.Rand.Float64() < 0.25 {
		return
	}
	if r.cut(cfg) {
		r.kids[0].partition(cfg)
		r.kids[1].partition(cfg)
	}
}

// furnish carves a room into every leaf and joins sibling subtrees with a
// corridor. It returns a room of the subtree to link against, or nil when
// the subtree ended up empty.
func (r *region) furnish(m *gamemap.Map, cfg *Config) *gamemap.Rect {
	if r.leaf() {
		return r.placeRoom(m, cfg)
	}
	a := r.kids[0].furnish(m, cfg)
	b := r.kids[1].furnish(m, cfg)
	switch {
	case a == nil:
		return b
	case b != nil:
		ax, ay := a.Center()
		bx, by := b.Center()
		carveCorridor(m, ax, ay, bx, by, cfg)
	}
	return a
}

func (r *region) placeRoom(m *gamemap.Map, cfg *Config) *gamemap.Rect {
	pad := cfg.RoomPadding
	maxW := min(r.w-2*pad, cfg.MaxRoomSize)
	maxH := min(r.h-2*pad, cfg.MaxRoomSize)
	if maxW < cfg.MinRoomSize || maxH < cfg.MinRoomSize {
		return nil
	}
	w := between(cfg.Rand, cfg.MinRoomSize, maxW)
	h := between(cfg.Rand, cfg.MinRoomSize, maxH)
	x := max(1, r.x+pad+cfg.Rand.Intn(r.w-w-2*pad+1))
	y := max(1, r.y+pad+cfg.Rand.Intn(r.h-h-2*pad+1))

	// The outer wall ring stays solid.
	w = min(w, m.Width-x-1)
	h = min(h, m.Height-y-1)
	if w < 3 || h < 3 {
		return nil
	}
	room := gamemap.NewRect(x-1, y-1, w, h)
	applyRoom(m, room)
	m.Rooms = append(m.Rooms, room)
	return &room
}

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func generateBSP(m *gamemap.Map, cfg *Config) {
	root := &region{w: cfg.Width, h: cfg.Height}
	root.partition(cfg)
	root.furnish(m, cfg)
}
