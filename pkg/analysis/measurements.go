package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// EdgeInfo contains information about an edge in the model
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
	// Uses counts the triangles sharing this edge by position
	Uses int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo

	// BoundaryEdges are used by one triangle, NonManifoldEdges by more
	// than two
	BoundaryEdges    int
	NonManifoldEdges int
	Watertight       bool
}

type edgeKey struct {
	a, b geometry.Vector3
}

// newEdgeKey orders the endpoints so both directions map to one key
func newEdgeKey(a, b geometry.Vector3) edgeKey {
	if less(b, a) {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// AnalyzeMesh measures a mesh and checks its edge topology. Edges are
// matched by position, so seams from split normals or uvs do not count as
// holes.
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   m.BoundingBox(),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		AllEdges:      make([]EdgeInfo, 0),
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	edgeIndex := make(map[edgeKey]int)

	for i, triangle := range m.Facets() {
		result.SurfaceArea += triangle.Area()
		// signed volume of the tetrahedron spanned with the origin
		result.Volume += triangle.V1.Dot(triangle.V2.Cross(triangle.V3)) / 6.0

		edges := []struct {
			start, end geometry.Vector3
		}{
			{triangle.V1, triangle.V2},
			{triangle.V2, triangle.V3},
			{triangle.V3, triangle.V1},
		}

		for _, edge := range edges {
			key := newEdgeKey(edge.start, edge.end)
			if idx, ok := edgeIndex[key]; ok {
				result.AllEdges[idx].Uses++
				continue
			}

			length := edge.start.Distance(edge.end)
			edgeIndex[key] = len(result.AllEdges)
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:      edge.start,
				End:        edge.end,
				Length:     length,
				TriangleID: i,
				Uses:       1,
			})

			totalLength += length
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}

	for _, edge := range result.AllEdges {
		switch {
		case edge.Uses == 1:
			result.BoundaryEdges++
		case edge.Uses > 2:
			result.NonManifoldEdges++
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	result.Watertight = result.TriangleCount > 0 && result.BoundaryEdges == 0 && result.NonManifoldEdges == 0

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindOpenEdges returns edges that are not shared by exactly two triangles
func FindOpenEdges(result *MeasurementResult) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Uses != 2 {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// FindNearestVertex finds the vertex of m nearest to point. An empty mesh
// returns the zero vector and math.MaxFloat64.
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (geometry.Vector3, float64) {
	var nearestVertex geometry.Vector3
	minDistance := math.MaxFloat64

	for _, vertex := range m.Vertices {
		distance := point.Distance(vertex)
		if distance < minDistance {
			minDistance = distance
			nearestVertex = vertex
		}
	}

	return nearestVertex, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
