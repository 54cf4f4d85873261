// Package primitive builds closed test and demo meshes: exact polyhedra and
// signed distance solids tessellated with sdfx.
package primitive

import (
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// Cube returns an axis-aligned cube of edge length size centred on the
// origin. It has 8 shared corners with smooth normals and 12 triangles.
func Cube(size float64) *mesh.Mesh {
	m := &mesh.Mesh{Name: "cube"}
	h := size / 2
	for i := 0; i < 8; i++ {
		corner := geometry.NewVector3(
			float64(i&1)*size-h,
			float64((i>>1)&1)*size-h,
			float64((i>>2)&1)*size-h,
		)
		m.Vertices = append(m.Vertices, corner)
		m.Normals = append(m.Normals, corner.Normalize())
		m.UVs = append(m.UVs, geometry.NewVector2(float64(i&1), float64((i>>1)&1)))
	}
	// corner index bits are x, y, z
	m.Triangles = []int{
		0, 4, 6, 0, 6, 2, // -x
		1, 3, 7, 1, 7, 5, // +x
		0, 1, 5, 0, 5, 4, // -y
		2, 6, 7, 2, 7, 3, // +y
		0, 2, 3, 0, 3, 1, // -z
		4, 5, 7, 4, 7, 6, // +z
	}
	return m
}

// Octahedron returns the regular octahedron with vertices on the axes at
// distance radius. Every face lies in its own plane.
func Octahedron(radius float64) *mesh.Mesh {
	m := &mesh.Mesh{Name: "octahedron"}
	axes := []geometry.Vector3{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	for i, a := range axes {
		m.Vertices = append(m.Vertices, a.Mul(radius))
		m.Normals = append(m.Normals, a)
		m.UVs = append(m.UVs, geometry.NewVector2(float64(i%2), float64(i/2)/2))
	}
	// +x 0, -x 1, +y 2, -y 3, +z 4, -z 5
	m.Triangles = []int{
		0, 2, 4, 4, 2, 1, 1, 2, 5, 5, 2, 0,
		0, 4, 3, 4, 1, 3, 1, 5, 3, 5, 0, 3,
	}
	return m
}
