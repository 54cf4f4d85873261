package slicer

import (
	"errors"
	"fmt"
)

// ErrInvariant marks geometry the splitter cannot handle consistently,
// usually non-manifold input
var ErrInvariant = errors.New("slicer invariant violated")

// TriangleError identifies the source triangle that broke a splitter
// invariant. The whole cut is aborted when one is returned.
type TriangleError struct {
	Triangle int
	Reason   string
}

func (e *TriangleError) Error() string {
	return fmt.Sprintf("triangle %d: %s", e.Triangle, e.Reason)
}

// Unwrap lets errors.Is match ErrInvariant
func (e *TriangleError) Unwrap() error {
	return ErrInvariant
}
