package generate

import "delve-roguelike/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2).
func carveCorridor(m *gamemap.Map, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(m, x1, y1, x2, y2)
	case CorridorStraight:
		carveH(m, x1, x2, y1)
		carveV(m, y1, y2, x2)
	default: // LShaped
		if cfg.Rand.Intn(2) == 0 {
			carveH(m, x1, x2, y1)
			carveV(m, y1, y2, x2)
		} else {
			carveV(m, y1, y2, x1)
			carveH(m, x1, x2, y2)
		}
	}
}

// carveH and carveV never open the outer wall ring.
func carveH(m *gamemap.Map, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if interior(m, x, y) {
			m.Set(x, y, gamemap.TileFloor)
		}
	}
}

func carveV(m *gamemap.Map, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if interior(m, x, y) {
			m.Set(x, y, gamemap.TileFloor)
		}
	}
}

func carveZShaped(m *gamemap.Map, x1, y1, x2, y2 int) {
	midY := (y1 + y2) / 2
	carveV(m, y1, midY, x1)
	carveH(m, x1, x2, midY)
	carveV(m, midY, y2, x2)
}

func interior(m *gamemap.Map, x, y int) bool {
	return x > 0 && y > 0 && x < m.Width-1 && y < m.Height-1
}
