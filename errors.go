package ribbon

import "fmt"

// InsufficientPointsError is returned when a path has fewer than two points,
// which leaves no edge to offset.
type InsufficientPointsError struct {
	N int
}

func (e InsufficientPointsError) Error() string {
	return fmt.Sprintf("path must have at least two points, got %d", e.N)
}

// DegenerateSegmentError is returned when two consecutive points coincide.
// A zero-length edge has no defined direction and cannot be offset. Index is
// the index of the edge's start vertex; for a closed path the wrap-around
// edge has index len(points)-1.
type DegenerateSegmentError struct {
	Index int
}

func (e DegenerateSegmentError) Error() string {
	return fmt.Sprintf("zero-length segment at index %d", e.Index)
}
