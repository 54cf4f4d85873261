// Package mesh defines the indexed triangle mesh consumed and produced by
// the slicer.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

// ErrInvalidMesh is returned by Validate for malformed meshes
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle mesh. Normals and UVs are per vertex and may
// be left empty. Front faces wind counter-clockwise.
type Mesh struct {
	Name      string
	Vertices  []geometry.Vector3
	Normals   []geometry.Vector3
	UVs       []geometry.Vector2
	Triangles []int
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// IsEmpty reports whether the mesh has no triangles
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Validate checks the index buffer and attribute lengths
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d triangle indices is not a multiple of 3", ErrInvalidMesh, len(m.Triangles))
	}
	if n := len(m.Normals); n != 0 && n != len(m.Vertices) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, n, len(m.Vertices))
	}
	if n := len(m.UVs); n != 0 && n != len(m.Vertices) {
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidMesh, n, len(m.Vertices))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrInvalidMesh, i/3, idx, len(m.Vertices))
		}
	}
	return nil
}

// Triangle returns the positions of triangle i
func (m *Mesh) Triangle(i int) (geometry.Vector3, geometry.Vector3, geometry.Vector3) {
	return m.Vertices[m.Triangles[3*i]], m.Vertices[m.Triangles[3*i+1]], m.Vertices[m.Triangles[3*i+2]]
}

// Normal returns the normal of vertex i, or the zero vector if the mesh
// carries none
func (m *Mesh) Normal(i int) geometry.Vector3 {
	if len(m.Normals) == 0 {
		return geometry.Vector3{}
	}
	return m.Normals[i]
}

// UV returns the texture coordinate of vertex i, or zero if the mesh
// carries none
func (m *Mesh) UV(i int) geometry.Vector2 {
	if len(m.UVs) == 0 {
		return geometry.Vector2{}
	}
	return m.UVs[i]
}

// BoundingBox calculates the bounding box of all referenced vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, idx := range m.Triangles {
		bbox.Extend(m.Vertices[idx])
	}
	return bbox
}

// Facets expands the index buffer into triangles with face normals
func (m *Mesh) Facets() []geometry.Triangle {
	facets := make([]geometry.Triangle, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		facets = append(facets, geometry.NewTriangle(geometry.FaceNormal(a, b, c), a, b, c))
	}
	return facets
}

// Append adds the vertices and triangles of other, offsetting its indices.
// Missing attributes on either side are filled with zero values.
func (m *Mesh) Append(other *Mesh) {
	offset := len(m.Vertices)
	if len(m.Normals) != 0 || len(other.Normals) != 0 {
		m.Normals = padVector3(m.Normals, offset)
		for i := range other.Vertices {
			m.Normals = append(m.Normals, other.Normal(i))
		}
	}
	if len(m.UVs) != 0 || len(other.UVs) != 0 {
		m.UVs = padVector2(m.UVs, offset)
		for i := range other.Vertices {
			m.UVs = append(m.UVs, other.UV(i))
		}
	}
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Triangles {
		m.Triangles = append(m.Triangles, idx+offset)
	}
}

// Clone returns a deep copy
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  append([]geometry.Vector3(nil), m.Vertices...),
		Normals:   append([]geometry.Vector3(nil), m.Normals...),
		UVs:       append([]geometry.Vector2(nil), m.UVs...),
		Triangles: append([]int(nil), m.Triangles...),
	}
}

func padVector3(s []geometry.Vector3, n int) []geometry.Vector3 {
	for len(s) < n {
		s = append(s, geometry.Vector3{})
	}
	return s
}

func padVector2(s []geometry.Vector2, n int) []geometry.Vector2 {
	for len(s) < n {
		s = append(s, geometry.Vector2{})
	}
	return s
}
