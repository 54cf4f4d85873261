package slicer

import "fmt"

// CapMode selects how the cut face is triangulated
type CapMode int

const (
	// CapFan sorts the cut points around the section and fan-triangulates
	// them. Exact for convex sections.
	CapFan CapMode = iota
	// CapContour chains cut segments into loops and ear-clips each loop.
	// Handles concave sections and several disjoint loops.
	CapContour
)

func (m CapMode) String() string {
	switch m {
	case CapFan:
		return "fan"
	case CapContour:
		return "contour"
	default:
		return fmt.Sprintf("CapMode(%d)", int(m))
	}
}

// ParseCapMode converts "fan" or "contour" into a CapMode
func ParseCapMode(s string) (CapMode, error) {
	switch s {
	case "fan", "":
		return CapFan, nil
	case "contour":
		return CapContour, nil
	default:
		return CapFan, fmt.Errorf("unknown cap mode %q (expected fan or contour)", s)
	}
}

// DefaultEpsilon is the tolerance for the side test and for welding and
// collinearity tests on the cut face
const DefaultEpsilon = 1e-6

// Options tunes a Slicer
type Options struct {
	// Epsilon is the distance from the plane under which a vertex counts as
	// lying on it. Such vertices never split a triangle. It is also the
	// distance under which cut points are welded and the cross product
	// magnitude under which neighbours count as collinear.
	Epsilon float64
	// WeldTolerance merges output vertices whose attributes fall into the
	// same grid cell of this size. Zero means exact matching.
	WeldTolerance float64
	CapMode       CapMode
	// Cap controls whether the cut face is sealed at all.
	Cap bool
}

// DefaultOptions returns exact deduplication with fan caps
func DefaultOptions() Options {
	return Options{
		Epsilon: DefaultEpsilon,
		CapMode: CapFan,
		Cap:     true,
	}
}

func (o Options) epsilon() float64 {
	if o.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return o.Epsilon
}
