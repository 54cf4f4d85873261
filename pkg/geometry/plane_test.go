package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestNewPlaneFromPoints(t *testing.T) {
	p, err := NewPlaneFromPoints(
		NewVector3(0, 2, 0),
		NewVector3(0, 2, 1),
		NewVector3(1, 2, 0),
	)
	if err != nil {
		t.Fatalf("NewPlaneFromPoints failed: %v", err)
	}

	expected := NewVector3(0, 1, 0)
	if p.Normal != expected {
		t.Errorf("Normal failed: expected %v, got %v", expected, p.Normal)
	}
	if d := p.SignedDistance(NewVector3(5, 2, -3)); math.Abs(d) > 1e-12 {
		t.Errorf("point on plane should have zero distance, got %v", d)
	}
	if d := p.SignedDistance(NewVector3(0, 5, 0)); math.Abs(d-3) > 1e-12 {
		t.Errorf("SignedDistance failed: expected 3, got %v", d)
	}
}

func TestNewPlaneDegenerate(t *testing.T) {
	if _, err := NewPlane(Vector3{}, NewVector3(1, 2, 3)); !errors.Is(err, ErrDegeneratePlane) {
		t.Errorf("zero normal: expected ErrDegeneratePlane, got %v", err)
	}
	_, err := NewPlaneFromPoints(NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(2, 0, 0))
	if !errors.Is(err, ErrDegeneratePlane) {
		t.Errorf("collinear points: expected ErrDegeneratePlane, got %v", err)
	}
	if _, err := NewPlaneFromDistance(Vector3{}, 1); !errors.Is(err, ErrDegeneratePlane) {
		t.Errorf("zero normal with distance: expected ErrDegeneratePlane, got %v", err)
	}
}

func TestNewPlaneFromDistance(t *testing.T) {
	p, err := NewPlaneFromDistance(NewVector3(0, 0, 2), 4)
	if err != nil {
		t.Fatalf("NewPlaneFromDistance failed: %v", err)
	}
	// Normal (0,0,2)·p == 4 is the plane z == 2
	if d := p.SignedDistance(NewVector3(1, 1, 2)); math.Abs(d) > 1e-12 {
		t.Errorf("expected z == 2 to lie on the plane, distance %v", d)
	}
}

func TestPlaneSide(t *testing.T) {
	p, _ := NewPlane(NewVector3(0, 1, 0), Vector3{})

	tests := []struct {
		name  string
		point Vector3
		want  bool
	}{
		{"above", NewVector3(0, 1, 0), true},
		{"below", NewVector3(0, -1, 0), false},
		{"on plane", NewVector3(3, 0, 7), true},
		{"just below", NewVector3(0, -1e-15, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Side(tt.point); got != tt.want {
				t.Errorf("Side(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestPlaneClassify(t *testing.T) {
	p, _ := NewPlane(NewVector3(0, 1, 0), Vector3{})

	tests := []struct {
		name    string
		point   Vector3
		epsilon float64
		want    Halfspace
	}{
		{"above", NewVector3(0, 1, 0), 1e-6, Above},
		{"below", NewVector3(0, -1, 0), 1e-6, Below},
		{"exactly on", NewVector3(3, 0, 7), 1e-6, On},
		{"just above within epsilon", NewVector3(0, 5e-7, 0), 1e-6, On},
		{"just below within epsilon", NewVector3(0, -5e-7, 0), 1e-6, On},
		{"just above without epsilon", NewVector3(0, 5e-7, 0), 0, Above},
		{"exactly on without epsilon", NewVector3(1, 0, 1), 0, On},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Classify(tt.point, tt.epsilon); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestPlaneIntersect(t *testing.T) {
	p, _ := NewPlane(NewVector3(0, 1, 0), Vector3{})

	start := NewVector3(0, -1, 0)
	end := NewVector3(2, 3, 0)
	tt, point, ok := p.Intersect(start, end)
	if !ok {
		t.Fatal("expected an intersection")
	}
	if math.Abs(tt-0.25) > 1e-12 {
		t.Errorf("t failed: expected 0.25, got %v", tt)
	}
	expected := NewVector3(0.5, 0, 0)
	if !point.ApproxEqual(expected, 1e-12) {
		t.Errorf("point failed: expected %v, got %v", expected, point)
	}

	// Walking the edge backwards gives the same point and the complementary t
	tr, pointReversed, ok := p.Intersect(end, start)
	if !ok {
		t.Fatal("expected an intersection for the reversed segment")
	}
	if pointReversed != point {
		t.Errorf("reversed point should be bit-identical: %v vs %v", pointReversed, point)
	}
	if math.Abs(tr-0.75) > 1e-12 {
		t.Errorf("reversed t failed: expected 0.75, got %v", tr)
	}
}

func TestPlaneIntersectSameSide(t *testing.T) {
	p, _ := NewPlane(NewVector3(0, 1, 0), Vector3{})

	if _, _, ok := p.Intersect(NewVector3(0, 1, 0), NewVector3(0, 2, 0)); ok {
		t.Error("segment above the plane should not intersect")
	}
	if _, _, ok := p.Intersect(NewVector3(0, -1, 0), NewVector3(0, -2, 0)); ok {
		t.Error("segment below the plane should not intersect")
	}
	// An endpoint on the plane counts as positive
	if _, _, ok := p.Intersect(NewVector3(0, 0, 0), NewVector3(0, 2, 0)); ok {
		t.Error("segment touching the plane from above should not intersect")
	}
}

func TestPlaneIntersectTouchingEndpoint(t *testing.T) {
	p, _ := NewPlane(NewVector3(0, 1, 0), Vector3{})

	tt, point, ok := p.Intersect(NewVector3(1, -2, 0), NewVector3(1, 0, 0))
	if !ok {
		t.Fatal("negative to on-plane segment must intersect")
	}
	if tt != 1 {
		t.Errorf("expected t == 1, got %v", tt)
	}
	if point != NewVector3(1, 0, 0) {
		t.Errorf("expected the on-plane endpoint, got %v", point)
	}
}

func TestPlaneBasis(t *testing.T) {
	normals := []Vector3{
		NewVector3(0, 1, 0),
		NewVector3(1, 0, 0),
		NewVector3(1, 2, 3),
	}
	for _, n := range normals {
		p, _ := NewPlane(n, Vector3{})
		u, v := p.Basis()
		if math.Abs(u.Dot(p.Normal)) > 1e-12 || math.Abs(v.Dot(p.Normal)) > 1e-12 {
			t.Errorf("basis for %v is not in the plane: u=%v v=%v", n, u, v)
		}
		if !u.Cross(v).ApproxEqual(p.Normal, 1e-12) {
			t.Errorf("u × v should equal the normal for %v, got %v", n, u.Cross(v))
		}
	}
}

func TestPlaneFlippedAndProject(t *testing.T) {
	p, _ := NewPlane(NewVector3(0, 0, 1), NewVector3(0, 0, 1))
	f := p.Flipped()

	point := NewVector3(3, 4, 5)
	if p.SignedDistance(point) != -f.SignedDistance(point) {
		t.Error("flipped plane should negate distances")
	}
	expected := NewVector3(3, 4, 1)
	if proj := p.Project(point); !proj.ApproxEqual(expected, 1e-12) {
		t.Errorf("Project failed: expected %v, got %v", expected, proj)
	}
}
