package ribbon

import (
	"math"
)

// Options holds the parameters of a ribbon offset. The zero value of
// ParallelEps and AngleEps selects the default thresholds.
type Options struct {
	// Width is the total ribbon width, ie. the distance between the two
	// offset curves.
	Width float64

	// FilletFraction is the design fillet radius as a fraction of Width.
	// Values below 0.5 would place the inner arc inside the ribbon itself;
	// clamping to 0.5 is left to the caller.
	FilletFraction float64

	// ParallelEps is the determinant threshold below which two offset lines
	// are considered parallel and their intersection degrades to the first
	// offset point.
	ParallelEps float64

	// AngleEps is the angle threshold in radians below which (or within
	// which of PI) a fillet vertex degrades to a straight line.
	AngleEps float64
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Width:          10.0,
		FilletFraction: 0.6,
		ParallelEps:    1e-6,
		AngleEps:       1e-3,
	}
}

// segment is the unit direction and unit left-normal of one polyline edge,
// aligned by index with the edge's start vertex.
type segment struct {
	dir  Point
	norm Point
}

// segments computes the edge directions and left-normals of pts, including
// the wrap-around edge when closed.
func segments(pts []Point, closed bool) ([]segment, error) {
	n := len(pts)
	m := n - 1
	if closed {
		m = n
	}
	segs := make([]segment, 0, m)
	for i := 0; i < m; i++ {
		d := pts[(i+1)%n].Sub(pts[i])
		length := d.Length()
		if length == 0.0 {
			return nil, DegenerateSegmentError{i}
		}
		dir := d.Div(length)
		segs = append(segs, segment{dir: dir, norm: dir.Rot90CCW()})
	}
	return segs, nil
}

// intersect returns the intersection of the infinite lines p1+t*d1 and
// p2+u*d2. Nearly parallel lines have no stable intersection and return p1
// unchanged; this can visibly distort output at near-180 degree turns.
func intersect(p1, d1, p2, d2 Point, eps float64) Point {
	denom := d1.PerpDot(d2)
	if math.Abs(denom) < eps {
		logger().Debug("near-parallel offset lines, keeping first offset point", "at", p1, "denom", denom)
		return p1
	}
	delta := p2.Sub(p1)
	t := delta.PerpDot(d2) / denom
	return p1.Add(d1.Mul(t))
}

// offsetPolyline offsets pts perpendicularly by halfWidth, negative for the
// right-hand side. Interior vertices (and all vertices of a closed path) are
// the intersection of the two adjacent offset edge lines; open endpoints
// project perpendicularly along the single adjacent edge.
func offsetPolyline(pts []Point, segs []segment, halfWidth float64, closed bool, eps float64) []Point {
	n := len(pts)
	off := make([]Point, 0, n)
	for i, p := range pts {
		if !closed && (i == 0 || i == n-1) {
			edge := segs[len(segs)-1]
			if i == 0 {
				edge = segs[0]
			}
			off = append(off, p.Add(edge.norm.Mul(halfWidth)))
			continue
		}
		s1 := segs[(i+n-1)%n]
		s2 := segs[i]
		p1 := p.Add(s1.norm.Mul(halfWidth))
		p2 := p.Add(s2.norm.Mul(halfWidth))
		off = append(off, intersect(p1, s1.dir, p2, s2.dir, eps))
	}
	return off
}

// acosClamped is the angle between unit vectors u and v in [0,PI], clamping
// the dot product against rounding outside [-1,1].
func acosClamped(u, v Point) float64 {
	return math.Acos(math.Max(-1.0, math.Min(1.0, u.Dot(v))))
}

// filletCorners replaces each offset vertex with a cubic Bezier fillet,
// choosing the interior or exterior radius from the turn angle at the raw
// (un-offset) vertex. Open endpoints and degenerate
// angles pass through as straight lines. The first emitted point starts the
// subpath.
func filletCorners(raw, off []Point, outerR, innerR float64, closed bool, angleEps float64) *Path {
	p := &Path{}
	n := len(raw)
	emit := func(q Point) {
		if len(p.cmds) == 0 {
			p.MoveTo(q.X, q.Y)
		} else {
			p.LineTo(q.X, q.Y)
		}
	}

	for i, q := range off {
		if !closed && (i == 0 || i == n-1) {
			emit(q)
			continue
		}

		rawNext := raw[(i+1)%n]
		if !closed {
			rawNext = raw[i+1]
		}
		u := raw[(i+n-1)%n].Sub(raw[i])
		v := rawNext.Sub(raw[i])
		l1, l2 := u.Length(), v.Length()
		if l1 == 0.0 || l2 == 0.0 {
			emit(q)
			continue
		}
		interior := acosClamped(u.Div(l1), v.Div(l2)) < math.Pi
		r := outerR
		if interior {
			r = innerR
		}

		// clamp the radius so the arc cannot overlap the adjacent edges
		prevOff := off[(i+n-1)%n]
		nextOff := off[(i+1)%n]
		if !closed {
			nextOff = off[i+1]
		}
		d1 := prevOff.Sub(q).Length()
		d2 := nextOff.Sub(q).Length()
		if d1 == 0.0 || d2 == 0.0 {
			emit(q)
			continue
		}
		r = math.Min(r, 0.5*math.Min(d1, d2))

		t1 := prevOff.Sub(q).Div(d1)
		t2 := nextOff.Sub(q).Div(d2)
		start := q.Add(t1.Mul(r))
		end := q.Add(t2.Mul(r))

		theta := acosClamped(t1, t2)
		if theta < angleEps || math.Abs(math.Pi-theta) < angleEps {
			logger().Debug("degenerate fillet angle, keeping straight corner", "vertex", i, "theta", theta)
			emit(q)
			continue
		}

		// cubic approximation of a circular arc, kappa from the arc's
		// half-angle
		phi := theta / 2.0
		k := 4.0 / 3.0 * math.Tan(phi/2.0)
		n1 := t1.Rot90CCW()
		n2 := t2.Rot90CCW()
		sign1, sign2 := 1.0, -1.0
		if interior {
			sign1, sign2 = -1.0, 1.0
		}
		c1 := start.Add(n1.Mul(r * k * sign1))
		c2 := end.Add(n2.Mul(r * k * sign2))
		emit(start)
		p.CubeTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	}
	return p
}

// Ribbon computes a constant-width ribbon outline around a polyline of
// straight segments. For a closed polyline it returns two independent closed
// loops, the left-hand offset as outer and the right-hand offset as inner.
// For an open polyline it returns a single closed loop (inner is nil) made of
// the left side forward and the right side reversed, with flat end caps.
//
// The computation is pure and deterministic; points are read-only to it.
func Ribbon(points []Point, closed bool, opts Options) (outer, inner *Path, err error) {
	parallelEps := opts.ParallelEps
	if parallelEps == 0.0 {
		parallelEps = 1e-6
	}
	angleEps := opts.AngleEps
	if angleEps == 0.0 {
		angleEps = 1e-3
	}

	if len(points) < 2 {
		return nil, nil, InsufficientPointsError{len(points)}
	}
	segs, err := segments(points, closed)
	if err != nil {
		return nil, nil, err
	}

	halfWidth := opts.Width / 2.0
	designR := opts.FilletFraction * opts.Width
	outerR := designR + halfWidth
	innerR := math.Max(designR-halfWidth, 0.0)

	left := offsetPolyline(points, segs, halfWidth, closed, parallelEps)
	right := offsetPolyline(points, segs, -halfWidth, closed, parallelEps)

	lhs := filletCorners(points, left, outerR, innerR, closed, angleEps)
	rhs := filletCorners(points, right, outerR, innerR, closed, angleEps)

	if closed {
		lhs.Close()
		rhs.Close()
		return lhs, rhs, nil
	}

	// single ribbon loop: the connecting segment and the implicit closing
	// segment are the flat end caps
	rev := rhs.Reverse()
	capTo := Point{rev.d[0], rev.d[1]}
	lhs.LineTo(capTo.X, capTo.Y)
	lhs.Join(rev)
	lhs.Close()
	return lhs, nil, nil
}
