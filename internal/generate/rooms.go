package generate

import "delve-roguelike/internal/gamemap"

// generateRooms drops up to MaxRooms random rooms, discarding any that
// overlap an earlier one, and links each new room to the previous one.
func generateRooms(m *gamemap.Map, cfg *Config) {
	span := max(1, cfg.MaxRoomSize-cfg.MinRoomSize+1)
	for i := 0; i < cfg.MaxRooms; i++ {
		w := cfg.MinRoomSize + cfg.Rand.Intn(span)
		h := cfg.MinRoomSize + cfg.Rand.Intn(span)
		if w+2 >= cfg.Width || h+2 >= cfg.Height {
			continue
		}
		x := cfg.Rand.Intn(cfg.Width - w - 1)
		y := cfg.Rand.Intn(cfg.Height - h - 1)
		room := gamemap.NewRect(x, y, w, h)

		overlaps := false
		for _, other := range m.Rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		applyRoom(m, room)
		if n := len(m.Rooms); n > 0 {
			nx, ny := room.Center()
			px, py := m.Rooms[n-1].Center()
			carveCorridor(m, px, py, nx, ny, cfg)
		}
		m.Rooms = append(m.Rooms, room)
	}
}
