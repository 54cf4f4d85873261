package slicer

import (
	"math"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// Vertex is one corner of a triangle during a cut. Position is in plane
// space until the buffer is converted into an output mesh.
type Vertex struct {
	Position geometry.Vector3
	Normal   geometry.Vector3
	UV       geometry.Vector2
	// Side places the vertex against the cutting plane, within Epsilon.
	Side geometry.Halfspace
}

// vertexKey excludes Side: a vertex on the plane is the same vertex for
// both of its neighbours
type vertexKey struct {
	position geometry.Vector3
	normal   geometry.Vector3
	uv       geometry.Vector2
}

// vertexBuffer accumulates unique vertices and the triangle index list of
// one side of the cut. With a tolerance, vertices match when position,
// normal and uv all lie within it; positions are hashed into a grid of that
// cell size and the 27 surrounding cells are searched.
type vertexBuffer struct {
	tolerance float64
	index     map[vertexKey]int
	grid      map[cell][]int
	vertices  []Vertex
	triangles []int
}

func newVertexBuffer(tolerance float64) *vertexBuffer {
	return &vertexBuffer{
		tolerance: tolerance,
		index:     make(map[vertexKey]int),
		grid:      make(map[cell][]int),
	}
}

// addTriangle looks up or inserts each corner and appends the three indices
func (b *vertexBuffer) addTriangle(v0, v1, v2 Vertex) {
	b.triangles = append(b.triangles, b.lookup(v0), b.lookup(v1), b.lookup(v2))
}

func (b *vertexBuffer) lookup(v Vertex) int {
	if b.tolerance <= 0 {
		key := vertexKey{position: v.Position, normal: v.Normal, uv: v.UV}
		if idx, ok := b.index[key]; ok {
			return idx
		}
		idx := b.insert(v)
		b.index[key] = idx
		return idx
	}

	c := cellOf(v.Position, b.tolerance)
	if idx, ok := neighbours(b.grid, c, func(idx int) bool {
		return b.near(b.vertices[idx], v)
	}); ok {
		return idx
	}
	idx := b.insert(v)
	b.grid[c] = append(b.grid[c], idx)
	return idx
}

func (b *vertexBuffer) insert(v Vertex) int {
	b.vertices = append(b.vertices, v)
	return len(b.vertices) - 1
}

func (b *vertexBuffer) near(a, v Vertex) bool {
	return a.Position.Distance(v.Position) <= b.tolerance &&
		a.Normal.Distance(v.Normal) <= b.tolerance &&
		math.Hypot(a.UV.X-v.UV.X, a.UV.Y-v.UV.Y) <= b.tolerance
}

func (b *vertexBuffer) triangleCount() int {
	return len(b.triangles) / 3
}

// toMesh converts the buffer into a mesh with positions in mesh space
func (b *vertexBuffer) toMesh(xf geometry.Transform) *mesh.Mesh {
	m := &mesh.Mesh{
		Vertices:  make([]geometry.Vector3, len(b.vertices)),
		Normals:   make([]geometry.Vector3, len(b.vertices)),
		UVs:       make([]geometry.Vector2, len(b.vertices)),
		Triangles: append([]int(nil), b.triangles...),
	}
	for i, v := range b.vertices {
		m.Vertices[i] = xf.ToMeshSpace(v.Position)
		m.Normals[i] = v.Normal
		m.UVs[i] = v.UV
	}
	return m
}
