package ribbon

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func countCmds(p *Path, cmd PathCmd) int {
	n := 0
	s := p.Scanner()
	for s.Scan() {
		if s.Cmd() == cmd {
			n++
		}
	}
	return n
}

func TestRibbonOpenSegment(t *testing.T) {
	// a single straight segment becomes a rectangle with flat caps
	outer, inner, err := Ribbon([]Point{{0, 0}, {10, 0}}, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.That(t, inner == nil)
	test.String(t, outer.String(), "M0 1L10 1L10 -1L0 -1z")
}

func TestRibbonOpenLoopStructure(t *testing.T) {
	outer, inner, err := Ribbon([]Point{{0, 0}, {10, 0}, {10, 10}}, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.That(t, inner == nil)
	test.That(t, outer.cmds[0] == MoveToCmd)
	test.That(t, outer.Closed())
	test.T(t, countCmds(outer, MoveToCmd), 1)
	// one fillet per side at the interior vertex
	test.T(t, countCmds(outer, CubeToCmd), 2)
}

func TestRibbonClosedSquare(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	outer, inner, err := Ribbon(square, true, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.That(t, outer != nil && inner != nil)
	test.That(t, outer.Closed() && inner.Closed())

	// design radius 1.2 gives outer 2.2 and inner 0.2; every corner of a
	// convex square classifies identically (interior), so every fillet uses
	// r=0.2 on both loops
	r := 0.2
	for _, p := range []*Path{outer, inner} {
		test.T(t, countCmds(p, CubeToCmd), 4)
		s := p.Scanner()
		for s.Scan() {
			if s.Cmd() != CubeToCmd {
				continue
			}
			// chord of a quarter-circle fillet of radius r
			test.Float(t, s.End().Sub(s.Start()).Length(), r*math.Sqrt2)
		}
	}

	// the left-hand loop offsets towards the interior for this CCW square
	test.That(t, outer.Coords()[0].Equals(Point{1.0, 1.2}))
	test.That(t, inner.Coords()[0].Equals(Point{-1.0, -0.8}))
}

func TestRibbonSquareFilletChords(t *testing.T) {
	// chord endpoints lie exactly r from the offset vertex along each
	// adjacent offset edge
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	outer, _, err := Ribbon(square, true, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)

	vertices := []Point{{1, 1}, {9, 1}, {9, 9}, {1, 9}}
	i := 0
	s := outer.Scanner()
	for s.Scan() {
		if s.Cmd() != CubeToCmd {
			continue
		}
		test.Float(t, s.Start().Sub(vertices[i]).Length(), 0.2)
		test.Float(t, s.End().Sub(vertices[i]).Length(), 0.2)
		i++
	}
	test.T(t, i, 4)
}

func TestRibbonMonotonicity(t *testing.T) {
	// clockwise square: the left-hand (outer) loop lies strictly farther from
	// the centroid than the input vertices, the right-hand (inner) loop no
	// farther
	square := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	centroid := Point{5, 5}
	vertexDist := square[0].Sub(centroid).Length()

	outer, inner, err := Ribbon(square, true, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	for _, p := range outer.Coords() {
		test.That(t, vertexDist < p.Sub(centroid).Length(), "outer point", p)
	}
	for _, p := range inner.Coords() {
		test.That(t, p.Sub(centroid).Length() < vertexDist, "inner point", p)
	}
}

func TestRibbonRadiusClamp(t *testing.T) {
	// adjacent offset edges of length 3 clamp the fillet radius to 1.5 even
	// though the design radius is far larger
	pts := []Point{{0, 0}, {4, 0}, {4, 4}}
	outer, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 2.0})
	test.Error(t, err)

	// left offset polyline is (0,1), (3,1), (3,4); its corner fillet starts
	// 1.5 before and after the offset vertex
	corner := Point{3, 1}
	found := false
	s := outer.Scanner()
	for s.Scan() {
		if s.Cmd() != CubeToCmd {
			continue
		}
		if s.Start().Sub(corner).Length() < 2.0 {
			test.Float(t, s.Start().Sub(corner).Length(), 1.5)
			test.Float(t, s.End().Sub(corner).Length(), 1.5)
			test.T(t, s.Start(), Point{1.5, 1.0})
			test.T(t, s.End(), Point{3.0, 2.5})
			found = true
		}
	}
	test.That(t, found)
}

func TestRibbonDeterminism(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {15, 5}, {10, 10}, {0, 10}}
	outer1, inner1, err := Ribbon(pts, true, Options{Width: 3.0, FilletFraction: 0.7})
	test.Error(t, err)
	outer2, inner2, err := Ribbon(pts, true, Options{Width: 3.0, FilletFraction: 0.7})
	test.Error(t, err)
	test.String(t, outer1.String(), outer2.String())
	test.String(t, inner1.String(), inner2.String())
}

func TestRibbonNearParallelFallback(t *testing.T) {
	// nearly collinear segments: the offset lines are nearly parallel and the
	// intersection falls back to the first offset point, and the fillet
	// degrades to a straight corner
	pts := []Point{{0, 0}, {10, 0}, {20, 1e-9}}
	outer, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.T(t, countCmds(outer, CubeToCmd), 0)

	// the kept point is the incoming edge's offset of the middle vertex
	keeps := false
	for _, p := range outer.Coords() {
		if p.Equals(Point{10, 1}) {
			keeps = true
		}
	}
	test.That(t, keeps)
}

func TestRibbonParallelEpsBoundary(t *testing.T) {
	// denom is about 1e-9 here: parallel under the default threshold, a true
	// intersection under a tighter one
	pts := []Point{{0, 0}, {10, 0}, {20, 1e-8}}

	strict, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 0.6, ParallelEps: 1e-12})
	test.Error(t, err)
	loose, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 0.6, ParallelEps: 1e-6})
	test.Error(t, err)
	test.That(t, !strict.Equals(loose))
}

func TestRibbonAngleEpsBoundary(t *testing.T) {
	// a nearly straight vertex: under the default threshold it degrades to a
	// line, with a tighter threshold it still produces an arc
	pts := []Point{{0, 0}, {10, 0}, {20, 0.001}}

	loose, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	test.T(t, countCmds(loose, CubeToCmd), 0)

	strict, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 0.6, AngleEps: 1e-7})
	test.Error(t, err)
	test.T(t, countCmds(strict, CubeToCmd), 2)
}

func TestRibbonErrors(t *testing.T) {
	var insufficient InsufficientPointsError
	var degenerate DegenerateSegmentError

	_, _, err := Ribbon([]Point{{0, 0}}, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.That(t, errors.As(err, &insufficient))
	test.T(t, insufficient.N, 1)

	_, _, err = Ribbon([]Point{{0, 0}, {0, 0}, {5, 5}}, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.That(t, errors.As(err, &degenerate))
	test.T(t, degenerate.Index, 0)

	// zero-length wrap-around edge of a closed path
	_, _, err = Ribbon([]Point{{0, 0}, {5, 0}, {0, 0}}, true, Options{Width: 2.0, FilletFraction: 0.6})
	test.That(t, errors.As(err, &degenerate))
	test.T(t, degenerate.Index, 2)
}

func TestRibbonPointsReadOnly(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}}
	orig := make([]Point, len(pts))
	copy(orig, pts)
	_, _, err := Ribbon(pts, false, Options{Width: 2.0, FilletFraction: 0.6})
	test.Error(t, err)
	for i := range pts {
		test.T(t, pts[i], orig[i])
	}
}
