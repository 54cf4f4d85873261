package slicer

import (
	"math"
	"testing"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

func xz(x, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, 0, z)
}

// lShape is three unit squares in the plane y == 0, as unordered segments
// with mixed directions. The bottom edge carries an extra collinear point.
func lShape() []segment {
	return []segment{
		{a: xz(1, 1), b: xz(2, 1)},
		{a: xz(0, 0), b: xz(1, 0)},
		{a: xz(1, 2), b: xz(1, 1)},
		{a: xz(2, 0), b: xz(1, 0)},
		{a: xz(0, 2), b: xz(0, 0)},
		{a: xz(2, 1), b: xz(2, 0)},
		{a: xz(1, 2), b: xz(0, 2)},
	}
}

func square(x, z float64) []segment {
	return []segment{
		{a: xz(x, z), b: xz(x+1, z)},
		{a: xz(x+1, z), b: xz(x+1, z+1)},
		{a: xz(x+1, z+1), b: xz(x, z+1)},
		{a: xz(x, z+1), b: xz(x, z)},
	}
}

func capArea(t *testing.T, caps []capPolygon, normal geometry.Vector3) float64 {
	t.Helper()
	area := 0.0
	for _, c := range caps {
		for i := 0; i < len(c.Triangles); i += 3 {
			a, b, cc := c.Points[c.Triangles[i]], c.Points[c.Triangles[i+1]], c.Points[c.Triangles[i+2]]
			cross := b.Sub(a).Cross(cc.Sub(a))
			if cross.Dot(normal) <= 0 {
				t.Errorf("triangle %v %v %v faces away from %v", a, b, cc, normal)
			}
			area += cross.Length() / 2
		}
	}
	return area
}

func TestContourCapConcave(t *testing.T) {
	for _, normal := range []geometry.Vector3{up, down} {
		caps, open := contourCap(lShape(), normal, DefaultEpsilon)
		if open != 0 {
			t.Errorf("expected no open contours, got %d", open)
		}
		if len(caps) != 1 {
			t.Fatalf("expected one loop, got %d", len(caps))
		}
		if len(caps[0].Points) != 6 {
			t.Errorf("expected 6 corners after collinear removal, got %d", len(caps[0].Points))
		}
		if n := len(caps[0].Triangles) / 3; n != 4 {
			t.Errorf("expected 4 triangles, got %d", n)
		}
		if area := capArea(t, caps, normal); math.Abs(area-3) > 1e-9 {
			t.Errorf("expected area 3, got %v", area)
		}
	}
}

func TestContourCapSeveralLoops(t *testing.T) {
	segments := append(square(0, 0), square(3, 0)...)
	caps, open := contourCap(segments, up, DefaultEpsilon)
	if open != 0 {
		t.Errorf("expected no open contours, got %d", open)
	}
	if len(caps) != 2 {
		t.Fatalf("expected two loops, got %d", len(caps))
	}
	if area := capArea(t, caps, up); math.Abs(area-2) > 1e-9 {
		t.Errorf("expected area 2, got %v", area)
	}
}

func TestChainSegmentsOpen(t *testing.T) {
	segments := []segment{
		{a: xz(0, 0), b: xz(1, 0)},
		{a: xz(1, 0), b: xz(1, 1)},
	}
	loops, open := chainSegments(segments, DefaultEpsilon)
	if len(loops) != 0 || open != 1 {
		t.Errorf("expected one open chain and no loops, got %d loops, %d open", len(loops), open)
	}
}

func TestChainSegmentsWeldsEndpoints(t *testing.T) {
	segments := square(0, 0)
	segments[2].a = xz(1+1e-9, 1)

	loops, open := chainSegments(segments, DefaultEpsilon)
	if len(loops) != 1 || open != 0 {
		t.Errorf("expected one closed loop, got %d loops, %d open", len(loops), open)
	}
}

func TestEarClipConvexAndConcave(t *testing.T) {
	tests := []struct {
		name      string
		points    []geometry.Vector2
		triangles int
	}{
		{"triangle", []geometry.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1},
		{"square", []geometry.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, 2},
		{"arrow", []geometry.Vector2{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices := earClip(tt.points)
			if len(indices) != 3*tt.triangles {
				t.Fatalf("expected %d triangles, got %d indices", tt.triangles, len(indices))
			}
			for i := 0; i < len(indices); i += 3 {
				a, b, c := tt.points[indices[i]], tt.points[indices[i+1]], tt.points[indices[i+2]]
				if cross2D(a, b, c) <= 0 {
					t.Errorf("triangle %d is not counter-clockwise", i/3)
				}
			}
		})
	}
}
