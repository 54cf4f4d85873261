package slicer

import (
	"math"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

type cell [3]int64

// welder merges points closer than a tolerance using a uniform grid with
// cells of that size, so each query only inspects the 27 neighbouring cells
type welder struct {
	tolerance float64
	grid      map[cell][]int
	points    []geometry.Vector3
}

func newWelder(tolerance float64) *welder {
	return &welder{
		tolerance: tolerance,
		grid:      make(map[cell][]int),
	}
}

func cellOf(p geometry.Vector3, size float64) cell {
	return cell{
		int64(math.Floor(p.X / size)),
		int64(math.Floor(p.Y / size)),
		int64(math.Floor(p.Z / size)),
	}
}

// neighbours returns the first entry of grid in the 27 cells around c that
// satisfies match
func neighbours(grid map[cell][]int, c cell, match func(idx int) bool) (int, bool) {
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, idx := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if match(idx) {
						return idx, true
					}
				}
			}
		}
	}
	return 0, false
}

// add returns the index of the representative point for p, inserting p
// when nothing within tolerance exists yet
func (w *welder) add(p geometry.Vector3) int {
	c := cellOf(p, w.tolerance)
	if idx, ok := neighbours(w.grid, c, func(idx int) bool {
		return w.points[idx].Distance(p) <= w.tolerance
	}); ok {
		return idx
	}
	idx := len(w.points)
	w.points = append(w.points, p)
	w.grid[c] = append(w.grid[c], idx)
	return idx
}

// weldPoints returns points with near-duplicates removed, keeping the
// first occurrence
func weldPoints(points []geometry.Vector3, tolerance float64) []geometry.Vector3 {
	w := newWelder(tolerance)
	for _, p := range points {
		w.add(p)
	}
	return w.points
}
