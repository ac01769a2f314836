package gamemap

import (
	"fmt"
	"math"
)

const (
	costCardinal = 1.0
	costDiagonal = 1.45

	maxPathSteps = 65536
)

var neighbourDirs = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// NavigationPath is the result of FindPath. Steps[0] is the start tile and
// the last step is the goal.
type NavigationPath struct {
	Success bool
	Steps   []int
}

type pathEntry struct {
	idx int
	f   float64
	seq int // insertion order, breaks ties deterministically
}

type pathHeap []pathEntry

func (h pathHeap) less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h *pathHeap) push(e pathEntry) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *pathHeap) pop() pathEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}

// FindPath runs A* over the eight-connected grid from start to goal,
// avoiding Blocked tiles. The goal itself may be blocked (it is usually
// occupied by the entity being chased). Panics if either index is outside
// the map.
func (m *Map) FindPath(start, goal int) NavigationPath {
	n := m.Len()
	if start < 0 || start >= n || goal < 0 || goal >= n {
		panic(fmt.Sprintf("gamemap: path %d -> %d outside map of %d tiles", start, goal, n))
	}
	if start == goal {
		return NavigationPath{Success: true, Steps: []int{start}}
	}

	gx, gy := m.XY(goal)
	heuristic := func(idx int) float64 {
		x, y := m.XY(idx)
		return math.Hypot(float64(x-gx), float64(y-gy))
	}

	cost := make(map[int]float64, 64)
	parent := make(map[int]int, 64)
	closed := make(map[int]bool, 64)
	open := make(pathHeap, 0, 64)
	seq := 0

	cost[start] = 0
	open.push(pathEntry{idx: start, f: heuristic(start), seq: seq})

	for steps := 0; len(open) > 0 && steps < maxPathSteps; steps++ {
		cur := open.pop()
		if closed[cur.idx] {
			continue
		}
		if cur.idx == goal {
			return NavigationPath{Success: true, Steps: m.unwind(parent, start, goal)}
		}
		closed[cur.idx] = true

		cx, cy := m.XY(cur.idx)
		for i, d := range neighbourDirs {
			nx, ny := cx+d[0], cy+d[1]
			if !m.InBounds(nx, ny) {
				continue
			}
			next := ny*m.Width + nx
			if closed[next] || (next != goal && m.Blocked[next]) || !m.Tiles[next].Walkable() {
				continue
			}
			step := costCardinal
			if i%2 == 1 {
				step = costDiagonal
			}
			g := cost[cur.idx] + step
			if old, seen := cost[next]; seen && old <= g {
				continue
			}
			cost[next] = g
			parent[next] = cur.idx
			seq++
			open.push(pathEntry{idx: next, f: g + heuristic(next), seq: seq})
		}
	}
	return NavigationPath{}
}

func (m *Map) unwind(parent map[int]int, start, goal int) []int {
	var rev []int
	for at := goal; at != start; at = parent[at] {
		rev = append(rev, at)
	}
	rev = append(rev, start)
	steps := make([]int, len(rev))
	for i, idx := range rev {
		steps[len(rev)-1-i] = idx
	}
	return steps
}
