// Package generate produces the level layout consumed by the simulation:
// a wall-filled map with carved rooms, corridors and a down staircase.
package generate

import (
	"fmt"
	"math/rand"

	"delve-roguelike/internal/config"
	"delve-roguelike/internal/gamemap"
)

// Layout selects the room placement algorithm.
type Layout uint8

const (
	LayoutRooms Layout = iota // random non-overlapping rooms chained in order
	LayoutBSP                 // binary space partition
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives generation of one level.
type Config struct {
	Width, Height int
	Layout        Layout
	CorridorStyle CorridorStyle

	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int

	// BSP only.
	MinLeafSize int
	MaxLeafSize int
	RoomPadding int

	Rand *rand.Rand
}

// FromConfig builds a generator config from the [map] settings.
func FromConfig(c config.MapConfig, rng *rand.Rand) (*Config, error) {
	cfg := &Config{
		Width:       c.Width,
		Height:      c.Height,
		MaxRooms:    c.MaxRooms,
		MinRoomSize: c.MinRoomSize,
		MaxRoomSize: c.MaxRoomSize,
		MinLeafSize: c.MinRoomSize + 2,
		MaxLeafSize: c.MaxRoomSize * 2,
		RoomPadding: 1,
		Rand:        rng,
	}
	switch c.Layout {
	case "", "rooms":
		cfg.Layout = LayoutRooms
	case "bsp":
		cfg.Layout = LayoutBSP
	default:
		return nil, fmt.Errorf("generate: unknown layout %q", c.Layout)
	}
	switch c.Corridor {
	case "", "l":
		cfg.CorridorStyle = CorridorLShaped
	case "z":
		cfg.CorridorStyle = CorridorZShaped
	case "straight":
		cfg.CorridorStyle = CorridorStraight
	default:
		return nil, fmt.Errorf("generate: unknown corridor style %q", c.Corridor)
	}
	return cfg, nil
}

// Generate builds a new level. Rooms are outer rectangles: the floor of a
// room spans X1+1..X2 by Y1+1..Y2. The down staircase sits in the centre
// of the last room; the player is expected to start in the first.
func Generate(cfg *Config) *gamemap.Map {
	m := gamemap.New(cfg.Width, cfg.Height)
	switch cfg.Layout {
	case LayoutBSP:
		generateBSP(m, cfg)
	default:
		generateRooms(m, cfg)
	}
	if len(m.Rooms) == 0 {
		// Degenerate settings; guarantee somewhere to stand.
		room := gamemap.NewRect(0, 0, min(3, cfg.Width-2), min(3, cfg.Height-2))
		applyRoom(m, room)
		m.Rooms = append(m.Rooms, room)
	}
	if len(m.Rooms) > 1 {
		sx, sy := m.Rooms[len(m.Rooms)-1].Center()
		m.Set(sx, sy, gamemap.TileDownStairs)
	}
	m.PopulateBlocked()
	return m
}

// applyRoom carves the floor of room.
func applyRoom(m *gamemap.Map, room gamemap.Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			if m.InBounds(x, y) {
				m.Set(x, y, gamemap.TileFloor)
			}
		}
	}
}
