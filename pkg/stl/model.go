package stl

import (
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// ToMesh converts the facet list into an indexed mesh. STL carries no
// texture coordinates, so the mesh has none.
func (m *Model) ToMesh() *mesh.Mesh {
	return mesh.FromFacets(m.Name, m.Triangles)
}

// FromMesh expands an indexed mesh into STL facets with computed normals
func FromMesh(m *mesh.Mesh) *Model {
	return &Model{
		Name:      m.Name,
		Triangles: m.Facets(),
	}
}
