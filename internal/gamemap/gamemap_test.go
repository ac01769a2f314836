package gamemap

import "testing"

// openMap creates a w×h map that is entirely passable floor.
func openMap(w, h int) *Map {
	m := New(w, h)
	for i := range m.Tiles {
		m.Tiles[i] = TileFloor
	}
	return m
}

func TestInBounds(t *testing.T) {
	m := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := m.InBounds(c.x, c.y)
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	m := New(7, 5)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			gx, gy := m.XY(idx)
			if gx != x || gy != y {
				t.Fatalf("XY(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
	if m.Index(6, 4) != m.Len()-1 {
		t.Fatalf("last tile index = %d, want %d", m.Index(6, 4), m.Len()-1)
	}
}

func TestIndexOutOfBoundsPanics(t *testing.T) {
	m := New(5, 5)
	for _, c := range [][2]int{{-1, 0}, {5, 0}, {0, 5}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Index(%d,%d) should panic", c[0], c[1])
				}
			}()
			m.Index(c[0], c[1])
		}()
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X1: 0, Y1: 0, X2: 4, Y2: 4}
	cx, cy := r.Center()
	if cx != 2 || cy != 2 {
		t.Errorf("expected center (2,2), got (%d,%d)", cx, cy)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 4, 4}
	b := Rect{3, 3, 7, 7}
	c := Rect{5, 5, 9, 9}
	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if a.Intersects(c) {
		t.Error("a and c should not intersect")
	}
}

func TestIsOpaque(t *testing.T) {
	cases := []struct {
		name string
		tile TileType
		want bool
	}{
		{"wall is opaque", TileWall, true},
		{"floor is transparent", TileFloor, false},
		{"stairs are transparent", TileDownStairs, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(5, 5)
			m.Set(2, 2, tc.tile)
			if got := m.IsOpaque(m.Index(2, 2)); got != tc.want {
				t.Errorf("IsOpaque = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestPopulateBlockedUsesGeometryOnly(t *testing.T) {
	m := openMap(4, 4)
	m.Set(1, 1, TileWall)
	for i := range m.Blocked {
		m.Blocked[i] = true
	}
	m.PopulateBlocked()
	for i, b := range m.Blocked {
		want := m.Tiles[i] == TileWall
		if b != want {
			x, y := m.XY(i)
			t.Errorf("Blocked(%d,%d) = %v, want %v", x, y, b, want)
		}
	}
}

func TestClearContentIndexKeepsSize(t *testing.T) {
	m := openMap(3, 3)
	m.TileContent[4] = append(m.TileContent[4], 99)
	m.ClearContentIndex()
	if len(m.TileContent) != 9 {
		t.Fatalf("TileContent len = %d, want 9", len(m.TileContent))
	}
	if len(m.TileContent[4]) != 0 {
		t.Fatal("TileContent should be emptied")
	}

	m.TileContent = nil
	m.ClearContentIndex()
	if len(m.TileContent) != 9 {
		t.Fatalf("TileContent should be resized to the map; got %d", len(m.TileContent))
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := openMap(3, 3)
	m.Rooms = []Rect{{0, 0, 2, 2}}
	c := m.Clone()
	c.Tiles[0] = TileWall
	c.Revealed[0] = true
	c.Rooms[0].X1 = 1
	if m.Tiles[0] != TileFloor || m.Revealed[0] || m.Rooms[0].X1 != 0 {
		t.Fatal("Clone shares storage with the original")
	}
	if len(c.TileContent) != 9 {
		t.Fatalf("clone TileContent len = %d, want 9", len(c.TileContent))
	}
}
