package slicer

import (
	"sort"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// capPolygon is one triangulated cut face in plane space. Triangles index
// into Points and wind counter-clockwise about Normal.
type capPolygon struct {
	Normal    geometry.Vector3
	Points    []geometry.Vector3
	Triangles []int
}

// orderAround sorts points counter-clockwise about normal. The anchor is
// the centroid, which lies strictly inside a convex section; each point is
// first assigned to one half of the circle so the cross product comparison
// stays a strict ordering.
func orderAround(points []geometry.Vector3, normal geometry.Vector3) []geometry.Vector3 {
	if len(points) < 3 {
		return points
	}
	var centroid geometry.Vector3
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(points)))

	// reference direction in the plane
	ref := points[0].Sub(centroid)
	ref = ref.Sub(normal.Mul(ref.Dot(normal)))
	across := normal.Cross(ref)

	half := func(p geometry.Vector3) int {
		d := p.Sub(centroid)
		a, b := d.Dot(across), d.Dot(ref)
		if a > 0 || (a == 0 && b >= 0) {
			return 0
		}
		return 1
	}

	ordered := append([]geometry.Vector3(nil), points...)
	sort.SliceStable(ordered, func(i, j int) bool {
		hi, hj := half(ordered[i]), half(ordered[j])
		if hi != hj {
			return hi < hj
		}
		di, dj := ordered[i].Sub(centroid), ordered[j].Sub(centroid)
		turn := normal.Dot(di.Cross(dj))
		if turn != 0 {
			return turn > 0
		}
		return di.Length() < dj.Length()
	})
	return ordered
}

// removeCollinear drops points whose neighbouring edges are parallel
// within epsilon, repeating until the polygon is stable
func removeCollinear(points []geometry.Vector3, epsilon float64) []geometry.Vector3 {
	out := append([]geometry.Vector3(nil), points...)
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i-1+len(out))%len(out)]
			next := out[(i+1)%len(out)]
			in := out[i].Sub(prev).Normalize()
			outDir := next.Sub(out[i]).Normalize()
			if in.Cross(outDir).Length() < epsilon {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

// fanCap orders the unique cut points into a polygon and fans it from
// its first point
func fanCap(points []geometry.Vector3, normal geometry.Vector3, epsilon float64) []capPolygon {
	polygon := removeCollinear(orderAround(weldPoints(points, epsilon), normal), epsilon)
	if len(polygon) < 3 {
		return nil
	}
	triangles := make([]int, 0, 3*(len(polygon)-2))
	for i := 1; i < len(polygon)-1; i++ {
		triangles = append(triangles, 0, i, i+1)
	}
	return []capPolygon{{Normal: normal, Points: polygon, Triangles: triangles}}
}

// capMesh converts cap polygons into a mesh fragment with a flat normal
// and planar uvs. Winding is reversed when the transform mirrors, so the
// cap still faces outwards in mesh space.
func capMesh(caps []capPolygon, plane geometry.Plane, xf geometry.Transform) *mesh.Mesh {
	m := &mesh.Mesh{}
	u, v := plane.Basis()
	for _, c := range caps {
		normal := xf.NormalToMeshSpace(c.Normal)
		offset := len(m.Vertices)
		for _, p := range c.Points {
			m.Vertices = append(m.Vertices, xf.ToMeshSpace(p))
			m.Normals = append(m.Normals, normal)
			m.UVs = append(m.UVs, geometry.NewVector2(p.Dot(u), p.Dot(v)))
		}
		for i := 0; i+2 < len(c.Triangles); i += 3 {
			a, b, cc := c.Triangles[i], c.Triangles[i+1], c.Triangles[i+2]
			if xf.Mirrors() {
				b, cc = cc, b
			}
			m.Triangles = append(m.Triangles, offset+a, offset+b, offset+cc)
		}
	}
	return m
}
