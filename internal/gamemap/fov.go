package gamemap

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// FieldOfView returns every in-bounds tile visible from origin within
// radius, using recursive shadowcasting. Opaque tiles are themselves
// visible but hide what lies behind them. The origin is always included.
// Each tile appears once.
func (m *Map) FieldOfView(origin Point, radius int) []Point {
	fov := &fovScan{
		m:      m,
		cx:     origin.X,
		cy:     origin.Y,
		radius: radius,
		seen:   make(map[int]bool),
	}
	fov.light(origin.X, origin.Y)
	if radius <= 0 {
		return fov.out
	}
	for _, o := range octants {
		fov.castLight(1, 1.0, 0.0, o[0], o[1], o[2], o[3])
	}
	return fov.out
}

type fovScan struct {
	m      *Map
	cx, cy int
	radius int
	seen   map[int]bool
	out    []Point
}

func (f *fovScan) light(x, y int) {
	if !f.m.InBounds(x, y) {
		return
	}
	idx := y*f.m.Width + x
	if f.seen[idx] {
		return
	}
	f.seen[idx] = true
	f.out = append(f.out, Point{X: x, Y: y})
}

// castLight scans one octant row by row.
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep
//   - dx sweeps from -j to 0
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
func (f *fovScan) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := f.radius * f.radius
	newStart := start

	for j := row; j <= f.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := f.cx + dx*xx + dy*xy
			wy := f.cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq {
				f.light(wx, wy)
			}

			opaque := !f.m.IsTransparent(wx, wy)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < f.radius {
				blocked = true
				f.castLight(j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
