package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegeneratePlane is returned when the input does not define a plane
var ErrDegeneratePlane = errors.New("degenerate plane")

// Plane is an oriented plane with unit normal. A point p lies on it
// when Normal·p + D == 0; the half-space the normal points into is positive.
type Plane struct {
	Normal Vector3
	D      float64
}

// NewPlane creates a plane through point with the given normal
func NewPlane(normal, point Vector3) (Plane, error) {
	n := normal.Normalize()
	if n == (Vector3{}) {
		return Plane{}, fmt.Errorf("%w: zero normal", ErrDegeneratePlane)
	}
	return Plane{Normal: n, D: -n.Dot(point)}, nil
}

// NewPlaneFromDistance creates the plane Normal·p == distance
func NewPlaneFromDistance(normal Vector3, distance float64) (Plane, error) {
	length := normal.Length()
	if length == 0 {
		return Plane{}, fmt.Errorf("%w: zero normal", ErrDegeneratePlane)
	}
	return Plane{Normal: normal.Mul(1 / length), D: -distance / length}, nil
}

// NewPlaneFromPoints creates the plane through a, b and c. The normal
// follows the counter-clockwise order of the points.
func NewPlaneFromPoints(a, b, c Vector3) (Plane, error) {
	n := FaceNormal(a, b, c)
	if n == (Vector3{}) {
		return Plane{}, fmt.Errorf("%w: points %s, %s, %s are collinear", ErrDegeneratePlane, a, b, c)
	}
	return Plane{Normal: n, D: -n.Dot(a)}, nil
}

// SignedDistance returns the distance from the plane, positive on the normal side
func (p Plane) SignedDistance(point Vector3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Side reports whether point is on the positive side. Points exactly on
// the plane count as positive.
func (p Plane) Side(point Vector3) bool {
	return p.SignedDistance(point) >= 0
}

// Halfspace places a point relative to a plane
type Halfspace int8

const (
	Below Halfspace = -1
	On    Halfspace = 0
	Above Halfspace = 1
)

func (h Halfspace) String() string {
	switch h {
	case Below:
		return "below"
	case On:
		return "on"
	case Above:
		return "above"
	default:
		return fmt.Sprintf("Halfspace(%d)", int8(h))
	}
}

// Classify reports whether point lies above, below or on the plane. Points
// within epsilon of the plane are On.
func (p Plane) Classify(point Vector3, epsilon float64) Halfspace {
	d := p.SignedDistance(point)
	switch {
	case d > epsilon:
		return Above
	case d < -epsilon:
		return Below
	default:
		return On
	}
}

// Flipped returns the same plane with the opposite orientation
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Neg(), D: -p.D}
}

// Intersect finds where the segment from start to end crosses the plane.
// It succeeds only when the endpoints are on different sides; t is the
// parameter along the segment measured from start. The point is always
// evaluated from the negative endpoint, so both directions of one edge give
// bit-identical results.
func (p Plane) Intersect(start, end Vector3) (float64, Vector3, bool) {
	ds := p.SignedDistance(start)
	de := p.SignedDistance(end)
	if (ds >= 0) == (de >= 0) {
		return 0, Vector3{}, false
	}

	neg, pos, dNeg, dPos := start, end, ds, de
	if ds >= 0 {
		neg, pos, dNeg, dPos = end, start, de, ds
	}
	// dNeg < 0 <= dPos, so t lies in (0, 1]
	t := dNeg / (dNeg - dPos)
	point := neg.Lerp(pos, t)
	if ds >= 0 {
		t = 1 - t
	}
	return t, point, true
}

// Basis returns two unit vectors spanning the plane such that
// u × v == Normal.
func (p Plane) Basis() (Vector3, Vector3) {
	n := p.Normal
	helper := NewVector3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = NewVector3(0, 1, 0)
	}
	u := helper.Cross(n).Normalize()
	v := n.Cross(u)
	return u, v
}

// Project returns the closest point on the plane
func (p Plane) Project(point Vector3) Vector3 {
	return point.Sub(p.Normal.Mul(p.SignedDistance(point)))
}
