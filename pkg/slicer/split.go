package slicer

import "github.com/philipparndt/meshcut/pkg/geometry"

// segment is the piece of the cut face crossed by one split triangle
type segment struct {
	a, b geometry.Vector3
}

// touchingEdge is a source edge lying in the plane. It bounds the cut face
// only when triangles from both sides meet along it.
type touchingEdge struct {
	a, b               geometry.Vector3
	positive, negative int
}

// cutState collects the output of one Cut call
type cutState struct {
	plane geometry.Plane
	// mirrored flips plane space winding against mesh space winding
	mirrored bool
	positive *vertexBuffer
	negative *vertexBuffer

	// unique intersection points in discovery order
	points   []geometry.Vector3
	seen     map[geometry.Vector3]struct{}
	segments []segment
	split    int

	touching map[[2]geometry.Vector3]*touchingEdge
	// insertion order of touching, so caps do not depend on map order
	touchingOrder [][2]geometry.Vector3
}

func newCutState(plane geometry.Plane, tolerance float64) *cutState {
	return &cutState{
		plane:    plane,
		positive: newVertexBuffer(tolerance),
		negative: newVertexBuffer(tolerance),
		seen:     make(map[geometry.Vector3]struct{}),
		touching: make(map[[2]geometry.Vector3]*touchingEdge),
	}
}

func (c *cutState) buffer(side bool) *vertexBuffer {
	if side {
		return c.positive
	}
	return c.negative
}

// addTriangle classifies one source triangle and routes it, splitting it
// first when it has corners strictly on both sides of the plane. Corners
// on the plane never cause a split; a corner on the plane of a split
// triangle is itself one of the two cut points. faceNormal replaces the
// normal of every intersection vertex.
func (c *cutState) addTriangle(index int, tri [3]Vertex, faceNormal geometry.Vector3) error {
	above, below, on := 0, 0, 0
	for _, v := range tri {
		switch v.Side {
		case geometry.Above:
			above++
		case geometry.Below:
			below++
		default:
			on++
		}
	}

	switch {
	case above == 0 && below == 0:
		c.buffer(c.coplanarSide(tri)).addTriangle(tri[0], tri[1], tri[2])
		return nil
	case below == 0 || above == 0:
		positive := below == 0
		c.buffer(positive).addTriangle(tri[0], tri[1], tri[2])
		if on == 2 {
			c.touch(tri, positive)
		}
		return nil
	}

	var polygon [5]Vertex
	var cuts [2]int
	n, found := 0, 0
	for i := 0; i < 3; i++ {
		start, end := tri[i], tri[(i+1)%3]
		if n == len(polygon) {
			return &TriangleError{Triangle: index, Reason: "polygon overflow while splitting"}
		}
		polygon[n] = start
		if start.Side == geometry.On {
			if found == len(cuts) {
				return &TriangleError{Triangle: index, Reason: "more than two cut points"}
			}
			cuts[found] = n
			found++
		}
		n++
		if !crosses(start.Side, end.Side) {
			continue
		}

		point, ok := c.intersect(start, end, faceNormal)
		if !ok {
			return &TriangleError{Triangle: index, Reason: "edge crosses the plane without an intersection"}
		}
		if found == len(cuts) || n == len(polygon) {
			return &TriangleError{Triangle: index, Reason: "more than two edges cross the plane"}
		}
		polygon[n] = point
		cuts[found] = n
		found++
		n++
	}
	// every corner on the plane replaces one inserted intersection
	if n != len(polygon)-on || found != len(cuts) {
		return &TriangleError{Triangle: index, Reason: "split polygon does not close"}
	}

	first, second := polygon[cuts[0]].Position, polygon[cuts[1]].Position
	c.addPoint(first)
	c.addPoint(second)
	if first != second {
		c.segments = append(c.segments, segment{a: first, b: second})
	}
	c.split++

	// Fan from the first cut point over the remaining corners
	base := cuts[0]
	for k := 1; k <= n-2; k++ {
		cur := (base + k) % n
		next := (base + k + 1) % n
		if degenerate(polygon[base], polygon[cur], polygon[next]) {
			continue
		}

		var side geometry.Halfspace
		if cur == cuts[1] {
			side = polygon[next].Side
		} else {
			side = polygon[cur].Side
		}
		c.buffer(side == geometry.Above).addTriangle(polygon[base], polygon[cur], polygon[next])
	}
	return nil
}

func crosses(a, b geometry.Halfspace) bool {
	return (a == geometry.Above && b == geometry.Below) || (a == geometry.Below && b == geometry.Above)
}

func degenerate(a, b, c Vertex) bool {
	return a.Position == b.Position || b.Position == c.Position || c.Position == a.Position
}

// coplanarSide routes a triangle lying in the plane to the half whose
// material it bounds: a face looking along the normal closes the negative
// half. Degenerate faces fall back to the positive side.
func (c *cutState) coplanarSide(tri [3]Vertex) bool {
	facing := geometry.FaceNormal(tri[0].Position, tri[1].Position, tri[2].Position).Dot(c.plane.Normal)
	if c.mirrored {
		facing = -facing
	}
	return facing <= 0
}

// touch records the edge of tri that lies in the plane
func (c *cutState) touch(tri [3]Vertex, positive bool) {
	for i := 0; i < 3; i++ {
		a, b := tri[i].Position, tri[(i+1)%3].Position
		if tri[i].Side != geometry.On || tri[(i+1)%3].Side != geometry.On {
			continue
		}
		key := orderedEdge(a, b)
		e, ok := c.touching[key]
		if !ok {
			e = &touchingEdge{a: a, b: b}
			c.touching[key] = e
			c.touchingOrder = append(c.touchingOrder, key)
		}
		if positive {
			e.positive++
		} else {
			e.negative++
		}
	}
}

// closeTouchingEdges adds the in-plane edges shared by both halves to the
// cut face. Edges touched from one side only, like a ridge resting on the
// plane, are left out.
func (c *cutState) closeTouchingEdges() {
	for _, key := range c.touchingOrder {
		e := c.touching[key]
		if e.positive == 0 || e.negative == 0 {
			continue
		}
		c.addPoint(e.a)
		c.addPoint(e.b)
		c.segments = append(c.segments, segment{a: e.a, b: e.b})
	}
}

func orderedEdge(a, b geometry.Vector3) [2]geometry.Vector3 {
	if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
		a, b = b, a
	}
	return [2]geometry.Vector3{a, b}
}

// intersect builds the vertex where the edge a-b crosses the plane. The
// edge is always evaluated from its negative endpoint so that neighbouring
// triangles sharing it agree on every attribute bit for bit.
func (c *cutState) intersect(a, b Vertex, normal geometry.Vector3) (Vertex, bool) {
	neg, pos := a, b
	if a.Side == geometry.Above {
		neg, pos = b, a
	}
	t, point, ok := c.plane.Intersect(neg.Position, pos.Position)
	if !ok {
		return Vertex{}, false
	}
	return Vertex{
		Position: point,
		Normal:   normal,
		UV:       neg.UV.Lerp(pos.UV, t),
		Side:     geometry.On,
	}, true
}

func (c *cutState) addPoint(p geometry.Vector3) {
	if _, ok := c.seen[p]; ok {
		return
	}
	c.seen[p] = struct{}{}
	c.points = append(c.points, p)
}
