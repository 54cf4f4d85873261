package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// tetrahedron returns a closed, outward wound tetrahedron
func tetrahedron() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []geometry.Vector3{
			geometry.NewVector3(0, 0, 0),
			geometry.NewVector3(1, 0, 0),
			geometry.NewVector3(0, 1, 0),
			geometry.NewVector3(0, 0, 1),
		},
		Triangles: []int{
			0, 2, 1,
			0, 1, 3,
			0, 3, 2,
			1, 2, 3,
		},
	}
}

func TestAnalyzeClosedMesh(t *testing.T) {
	result := AnalyzeMesh(tetrahedron())

	if result.TriangleCount != 4 {
		t.Errorf("TriangleCount = %d, want 4", result.TriangleCount)
	}
	if result.EdgeCount != 6 {
		t.Errorf("EdgeCount = %d, want 6", result.EdgeCount)
	}
	if !result.Watertight {
		t.Errorf("tetrahedron should be watertight: %d boundary, %d non-manifold", result.BoundaryEdges, result.NonManifoldEdges)
	}
	if math.Abs(result.Volume-1.0/6.0) > 1e-12 {
		t.Errorf("Volume = %v, want 1/6", result.Volume)
	}
	if math.Abs(result.MinEdgeLength-1) > 1e-12 || math.Abs(result.MaxEdgeLength-math.Sqrt2) > 1e-12 {
		t.Errorf("edge lengths = [%v, %v], want [1, sqrt2]", result.MinEdgeLength, result.MaxEdgeLength)
	}
	expected := geometry.NewVector3(1, 1, 1)
	if result.Dimensions != expected {
		t.Errorf("Dimensions = %v, want %v", result.Dimensions, expected)
	}
}

func TestAnalyzeOpenMesh(t *testing.T) {
	m := tetrahedron()
	m.Triangles = m.Triangles[:9]

	result := AnalyzeMesh(m)

	if result.Watertight {
		t.Error("tetrahedron without a face should not be watertight")
	}
	if result.BoundaryEdges != 3 {
		t.Errorf("BoundaryEdges = %d, want 3", result.BoundaryEdges)
	}
	if open := FindOpenEdges(result); len(open) != 3 {
		t.Errorf("FindOpenEdges returned %d edges, want 3", len(open))
	}
}

func TestAnalyzeSeamIsNotAHole(t *testing.T) {
	// Duplicate vertex 0 with a different normal, as hard edges do
	m := tetrahedron()
	m.Vertices = append(m.Vertices, m.Vertices[0])
	m.Normals = []geometry.Vector3{{Z: 1}, {}, {}, {}, {Z: -1}}
	m.Triangles[0] = 4

	if result := AnalyzeMesh(m); !result.Watertight {
		t.Error("split vertex at the same position should still be watertight")
	}
}

func TestAnalyzeNonManifold(t *testing.T) {
	m := tetrahedron()
	m.Vertices = append(m.Vertices, geometry.NewVector3(1, 1, -1))
	m.Triangles = append(m.Triangles, 0, 1, 4)

	result := AnalyzeMesh(m)
	if result.NonManifoldEdges != 1 {
		t.Errorf("NonManifoldEdges = %d, want 1", result.NonManifoldEdges)
	}
	if result.Watertight {
		t.Error("mesh with a fin should not be watertight")
	}
}

func TestAnalyzeEmptyMesh(t *testing.T) {
	result := AnalyzeMesh(&mesh.Mesh{})
	if result.Watertight {
		t.Error("empty mesh should not be watertight")
	}
	if result.MinEdgeLength != 0 {
		t.Errorf("MinEdgeLength = %v, want 0 for empty mesh", result.MinEdgeLength)
	}
}

func TestFindLongestEdges(t *testing.T) {
	result := AnalyzeMesh(tetrahedron())

	edges := FindLongestEdges(result, 3)
	if len(edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(edges))
	}
	for _, e := range edges {
		if math.Abs(e.Length-math.Sqrt2) > 1e-12 {
			t.Errorf("expected the three diagonal edges, got length %v", e.Length)
		}
	}
	if got := FindLongestEdges(result, 100); len(got) != 6 {
		t.Errorf("count larger than edge count should return all 6 edges, got %d", len(got))
	}
	if got := FindEdgesByLength(result, 0.5, 1.2); len(got) != 3 {
		t.Errorf("FindEdgesByLength returned %d edges, want 3", len(got))
	}
}

func TestFindNearestVertex(t *testing.T) {
	vertex, dist := FindNearestVertex(tetrahedron(), geometry.NewVector3(0.9, 0.1, 0))
	if vertex != geometry.NewVector3(1, 0, 0) {
		t.Errorf("nearest vertex = %v, want (1,0,0)", vertex)
	}
	if math.Abs(dist-math.Sqrt(0.02)) > 1e-12 {
		t.Errorf("distance = %v, want %v", dist, math.Sqrt(0.02))
	}

	if _, dist := FindNearestVertex(&mesh.Mesh{}, geometry.Vector3{}); dist != math.MaxFloat64 {
		t.Errorf("empty mesh distance = %v, want MaxFloat64", dist)
	}
}
