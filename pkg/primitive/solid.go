package primitive

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// DefaultCells controls marching cubes resolution along the longest axis
const DefaultCells = 64

// Sphere tessellates a sphere of the given radius
func Sphere(radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return Tessellate("sphere", s, cells), nil
}

// Cylinder tessellates a cylinder along z centred on the origin
func Cylinder(height, radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return Tessellate("cylinder", s, cells), nil
}

// RoundedBox tessellates a box centred on the origin with rounded edges
func RoundedBox(size geometry.Vector3, round float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, round)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	return Tessellate("box", s, cells), nil
}

// Tessellate converts an SDF solid into an indexed mesh with marching
// cubes. Corners at identical positions are merged and their normals
// averaged, giving a smooth shaded closed mesh.
func Tessellate(name string, s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	m := &mesh.Mesh{Name: name}
	index := make(map[geometry.Vector3]int)
	for _, tri := range triangles {
		n := tri.Normal()
		normal := geometry.NewVector3(n.X, n.Y, n.Z)

		var corners [3]int
		for j := 0; j < 3; j++ {
			p := geometry.NewVector3(tri[j].X, tri[j].Y, tri[j].Z)
			idx, ok := index[p]
			if !ok {
				idx = len(m.Vertices)
				index[p] = idx
				m.Vertices = append(m.Vertices, p)
				m.Normals = append(m.Normals, geometry.Vector3{})
			}
			m.Normals[idx] = m.Normals[idx].Add(normal)
			corners[j] = idx
		}
		// marching cubes can collapse a triangle onto merged corners
		if corners[0] == corners[1] || corners[1] == corners[2] || corners[2] == corners[0] {
			continue
		}
		m.Triangles = append(m.Triangles, corners[0], corners[1], corners[2])
	}
	for i, n := range m.Normals {
		m.Normals[i] = n.Normalize()
	}
	return m
}
