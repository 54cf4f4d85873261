package slicer

import "github.com/philipparndt/meshcut/pkg/geometry"

// chainSegments joins cut segments that share endpoints into closed loops.
// Endpoints are welded first so loops close even when WeldTolerance
// produced slightly different points. Open chains are dropped and counted.
func chainSegments(segments []segment, epsilon float64) ([][]geometry.Vector3, int) {
	w := newWelder(epsilon)
	edges := make([][2]int, 0, len(segments))
	for _, s := range segments {
		a, b := w.add(s.a), w.add(s.b)
		if a != b {
			edges = append(edges, [2]int{a, b})
		}
	}

	touching := make(map[int][]int)
	for i, e := range edges {
		touching[e[0]] = append(touching[e[0]], i)
		touching[e[1]] = append(touching[e[1]], i)
	}

	used := make([]bool, len(edges))
	var loops [][]geometry.Vector3
	open := 0

	for start := range edges {
		if used[start] {
			continue
		}
		used[start] = true
		first := edges[start][0]
		loop := []int{first, edges[start][1]}

		closed := false
		for {
			last := loop[len(loop)-1]
			if last == first {
				closed = true
				loop = loop[:len(loop)-1]
				break
			}
			next := -1
			for _, e := range touching[last] {
				if !used[e] {
					next = e
					break
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			if edges[next][0] == last {
				loop = append(loop, edges[next][1])
			} else {
				loop = append(loop, edges[next][0])
			}
		}

		if !closed || len(loop) < 3 {
			open++
			continue
		}
		points := make([]geometry.Vector3, len(loop))
		for i, idx := range loop {
			points[i] = w.points[idx]
		}
		loops = append(loops, points)
	}
	return loops, open
}

// newellNormal returns the area-weighted normal of a closed polygon
func newellNormal(points []geometry.Vector3) geometry.Vector3 {
	var n geometry.Vector3
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n = n.Add(cur.Cross(next))
	}
	return n
}

// contourCap ear-clips every closed loop of cut segments, oriented
// counter-clockwise about normal
func contourCap(segments []segment, normal geometry.Vector3, epsilon float64) ([]capPolygon, int) {
	loops, open := chainSegments(segments, epsilon)
	plane := geometry.Plane{Normal: normal}
	u, v := plane.Basis()

	var caps []capPolygon
	for _, loop := range loops {
		if newellNormal(loop).Dot(normal) < 0 {
			for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
				loop[i], loop[j] = loop[j], loop[i]
			}
		}
		loop = removeCollinear(loop, epsilon)
		if len(loop) < 3 {
			continue
		}
		flat := make([]geometry.Vector2, len(loop))
		for i, p := range loop {
			flat[i] = geometry.NewVector2(p.Dot(u), p.Dot(v))
		}
		caps = append(caps, capPolygon{
			Normal:    normal,
			Points:    loop,
			Triangles: earClip(flat),
		})
	}
	return caps, open
}

// earClip triangulates a counter-clockwise simple polygon. If no ear can
// be found (self-intersecting input) the remainder is fanned.
func earClip(points []geometry.Vector2) []int {
	indices := make([]int, len(points))
	for i := range indices {
		indices[i] = i
	}

	triangles := make([]int, 0, 3*(len(points)-2))
	for len(indices) > 3 {
		earFound := false
		for i := range indices {
			if isEar(points, indices, i) {
				n := len(indices)
				triangles = append(triangles, indices[(i-1+n)%n], indices[i], indices[(i+1)%n])
				indices = append(indices[:i], indices[i+1:]...)
				earFound = true
				break
			}
		}
		if !earFound {
			for i := 1; i < len(indices)-1; i++ {
				triangles = append(triangles, indices[0], indices[i], indices[i+1])
			}
			return triangles
		}
	}
	if len(indices) == 3 {
		triangles = append(triangles, indices[0], indices[1], indices[2])
	}
	return triangles
}

// isEar checks if the corner at earIndex is convex and contains no other
// polygon vertex
func isEar(points []geometry.Vector2, indices []int, earIndex int) bool {
	n := len(indices)
	prev := indices[(earIndex-1+n)%n]
	curr := indices[earIndex]
	next := indices[(earIndex+1)%n]

	a, b, c := points[prev], points[curr], points[next]
	if cross2D(a, b, c) <= 0 {
		return false
	}

	for _, idx := range indices {
		if idx == prev || idx == curr || idx == next {
			continue
		}
		if pointInTriangle2D(points[idx], a, b, c) {
			return false
		}
	}
	return true
}

func cross2D(a, b, c geometry.Vector2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func pointInTriangle2D(p, a, b, c geometry.Vector2) bool {
	d1 := cross2D(p, a, b)
	d2 := cross2D(p, b, c)
	d3 := cross2D(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
