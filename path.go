package ribbon

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
)

// PathCmd is a path command such as in SVG path data.
type PathCmd int

const (
	MoveToCmd PathCmd = iota
	LineToCmd
	QuadToCmd
	CubeToCmd
	CloseCmd
)

func (cmd PathCmd) String() string {
	switch cmd {
	case MoveToCmd:
		return "MoveTo"
	case LineToCmd:
		return "LineTo"
	case QuadToCmd:
		return "QuadTo"
	case CubeToCmd:
		return "CubeTo"
	case CloseCmd:
		return "Close"
	}
	return fmt.Sprintf("PathCmd(%d)", int(cmd))
}

// cmdLen returns the number of coordinate values consumed by cmd. CloseCmd
// carries the subpath start position so that scanning forwards or backwards
// never needs to replay the path.
func cmdLen(cmd PathCmd) int {
	switch cmd {
	case QuadToCmd:
		return 4
	case CubeToCmd:
		return 6
	}
	return 2
}

// Path is a sequence of MoveTo, LineTo, QuadTo, CubeTo and Close commands,
// each consecutive pair of floats in d being an (x,y) coordinate.
type Path struct {
	cmds []PathCmd
	d    []float64
	x0   float64 // start of current subpath, used by Close
	y0   float64
}

// Empty returns true if the path contains no segments.
func (p *Path) Empty() bool {
	return p == nil || len(p.cmds) <= 1
}

// Copy returns a deep copy of the path.
func (p *Path) Copy() *Path {
	q := &Path{
		cmds: make([]PathCmd, len(p.cmds)),
		d:    make([]float64, len(p.d)),
		x0:   p.x0,
		y0:   p.y0,
	}
	copy(q.cmds, p.cmds)
	copy(q.d, p.d)
	return q
}

// Equals returns true if p and q are equal within tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.cmds) != len(q.cmds) || len(p.d) != len(q.d) {
		return false
	}
	for i := range p.cmds {
		if p.cmds[i] != q.cmds[i] {
			return false
		}
	}
	for i := range p.d {
		if !equal(p.d[i], q.d[i]) {
			return false
		}
	}
	return true
}

// Append appends path q to p as a new subpath and returns p.
func (p *Path) Append(q *Path) *Path {
	if q == nil || len(q.cmds) == 0 {
		return p
	}
	if len(q.cmds) > 0 && q.cmds[0] != MoveToCmd {
		p.cmds = append(p.cmds, MoveToCmd)
		p.d = append(p.d, 0.0, 0.0)
	}
	p.cmds = append(p.cmds, q.cmds...)
	p.d = append(p.d, q.d...)
	p.x0, p.y0 = q.x0, q.y0
	return p
}

// Join joins path q to p, connecting them when the end of p coincides with
// the start of q, and returns p.
func (p *Path) Join(q *Path) *Path {
	if q == nil || len(q.cmds) == 0 {
		return p
	}
	if len(p.cmds) == 0 {
		*p = *q
		return p
	}
	if q.cmds[0] == MoveToCmd {
		end := p.Pos()
		start := Point{q.d[0], q.d[1]}
		if end.Equals(start) {
			p.cmds = append(p.cmds, q.cmds[1:]...)
			p.d = append(p.d, q.d[2:]...)
			p.x0, p.y0 = q.x0, q.y0
			return p
		}
	}
	return p.Append(q)
}

// Pos returns the current position, ie. the end point of the last command.
func (p *Path) Pos() Point {
	if len(p.cmds) > 0 && p.cmds[len(p.cmds)-1] == CloseCmd {
		return Point{p.x0, p.y0}
	}
	if len(p.d) > 1 {
		return Point{p.d[len(p.d)-2], p.d[len(p.d)-1]}
	}
	return Point{}
}

// MoveTo moves the position to (x,y) and starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, MoveToCmd)
	p.d = append(p.d, x, y)
	p.x0, p.y0 = x, y
}

// LineTo adds a line segment to (x,y).
func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, LineToCmd)
	p.d = append(p.d, x, y)
}

// QuadTo adds a quadratic Bezier with control point (cpx,cpy) ending at (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	p.cmds = append(p.cmds, QuadToCmd)
	p.d = append(p.d, cpx, cpy, x, y)
}

// CubeTo adds a cubic Bezier with control points (x1,y1) and (x2,y2) ending at (x,y).
func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) {
	p.cmds = append(p.cmds, CubeToCmd)
	p.d = append(p.d, x1, y1, x2, y2, x, y)
}

// Close closes the current subpath with an implicit line back to its start.
func (p *Path) Close() {
	p.cmds = append(p.cmds, CloseCmd)
	p.d = append(p.d, p.x0, p.y0)
}

// Closed returns true if the last subpath of p is closed.
func (p *Path) Closed() bool {
	return 0 < len(p.cmds) && p.cmds[len(p.cmds)-1] == CloseCmd
}

////////////////////////////////////////////////////////////////

// PathScanner scans the commands of a path in order.
type PathScanner struct {
	p     *Path
	i, j  int
	start Point
}

// Scanner returns a scanner positioned before the first command.
func (p *Path) Scanner() *PathScanner {
	return &PathScanner{p: p, i: -1}
}

// Scan advances to the next command, returning false when the path is exhausted.
func (s *PathScanner) Scan() bool {
	if 0 <= s.i {
		s.start = s.End()
		s.j += cmdLen(s.p.cmds[s.i])
	}
	s.i++
	return s.i < len(s.p.cmds)
}

// Cmd returns the current command.
func (s *PathScanner) Cmd() PathCmd {
	return s.p.cmds[s.i]
}

// Start returns the position before the current command.
func (s *PathScanner) Start() Point {
	return s.start
}

// End returns the position after the current command.
func (s *PathScanner) End() Point {
	n := cmdLen(s.p.cmds[s.i])
	return Point{s.p.d[s.j+n-2], s.p.d[s.j+n-1]}
}

// CP1 returns the first control point for quadratic and cubic Beziers.
func (s *PathScanner) CP1() Point {
	if s.p.cmds[s.i] != QuadToCmd && s.p.cmds[s.i] != CubeToCmd {
		panic("must be quadratic or cubic Bezier")
	}
	return Point{s.p.d[s.j], s.p.d[s.j+1]}
}

// CP2 returns the second control point for cubic Beziers.
func (s *PathScanner) CP2() Point {
	if s.p.cmds[s.i] != CubeToCmd {
		panic("must be cubic Bezier")
	}
	return Point{s.p.d[s.j+2], s.p.d[s.j+3]}
}

////////////////////////////////////////////////////////////////

// Coords returns the start/end coordinates of all segments of the path.
func (p *Path) Coords() []Point {
	coords := []Point{}
	s := p.Scanner()
	for s.Scan() {
		if len(coords) == 0 && s.Cmd() != MoveToCmd {
			coords = append(coords, s.Start())
		}
		if s.Cmd() == CloseCmd && s.End().Equals(s.Start()) {
			continue
		}
		if 0 < len(coords) && coords[len(coords)-1].Equals(s.End()) {
			continue
		}
		coords = append(coords, s.End())
	}
	return coords
}

// Points returns the ordered point sequence of a path that consists of
// straight segments only, together with whether the path is closed. Curve
// commands and multiple subpaths yield an error. A closed path does not
// retain a duplicate closing point.
func (p *Path) Points() ([]Point, bool, error) {
	pts := []Point{}
	closed := false
	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case MoveToCmd:
			if 0 < len(pts) {
				return nil, false, fmt.Errorf("path has multiple subpaths")
			}
			pts = append(pts, s.End())
		case LineToCmd:
			pts = append(pts, s.End())
		case CloseCmd:
			closed = true
		default:
			return nil, false, fmt.Errorf("only straight segments allowed, command = %v", s.Cmd())
		}
	}
	if closed && 1 < len(pts) && pts[len(pts)-1].Equals(pts[0]) {
		pts = pts[:len(pts)-1]
	}
	return pts, closed, nil
}

// Transform transforms the path by affine transformation matrix m and returns p.
func (p *Path) Transform(m Matrix) *Path {
	for i := 0; i+1 < len(p.d); i += 2 {
		q := m.Dot(Point{p.d[i], p.d[i+1]})
		p.d[i], p.d[i+1] = q.X, q.Y
	}
	start := m.Dot(Point{p.x0, p.y0})
	p.x0, p.y0 = start.X, start.Y
	return p
}

// Translate translates the path by (x,y) and returns p.
func (p *Path) Translate(x, y float64) *Path {
	return p.Transform(Identity.Translate(x, y))
}

// Reverse returns a new path that is p with the direction of all subpaths reversed.
func (p *Path) Reverse() *Path {
	ip := &Path{}
	type segment struct {
		cmd        PathCmd
		start, end Point
		cp1, cp2   Point
	}

	segs := []segment{}
	closed := false
	flush := func() {
		if len(segs) == 0 {
			return
		}
		end := segs[len(segs)-1].end
		if closed {
			end = segs[0].start
		}
		ip.MoveTo(end.X, end.Y)
		for i := len(segs) - 1; 0 <= i; i-- {
			seg := segs[i]
			if i == 0 && closed && seg.cmd != QuadToCmd && seg.cmd != CubeToCmd {
				break // the Close below draws this segment
			}
			switch seg.cmd {
			case LineToCmd, CloseCmd:
				ip.LineTo(seg.start.X, seg.start.Y)
			case QuadToCmd:
				ip.QuadTo(seg.cp1.X, seg.cp1.Y, seg.start.X, seg.start.Y)
			case CubeToCmd:
				ip.CubeTo(seg.cp2.X, seg.cp2.Y, seg.cp1.X, seg.cp1.Y, seg.start.X, seg.start.Y)
			}
		}
		if closed {
			ip.Close()
		}
		segs = segs[:0]
		closed = false
	}

	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case MoveToCmd:
			flush()
		case QuadToCmd:
			segs = append(segs, segment{cmd: QuadToCmd, start: s.Start(), end: s.End(), cp1: s.CP1()})
		case CubeToCmd:
			segs = append(segs, segment{cmd: CubeToCmd, start: s.Start(), end: s.End(), cp1: s.CP1(), cp2: s.CP2()})
		case CloseCmd:
			closed = true
			if !s.End().Equals(s.Start()) {
				segs = append(segs, segment{cmd: CloseCmd, start: s.Start(), end: s.End()})
			}
		default:
			segs = append(segs, segment{cmd: LineToCmd, start: s.Start(), end: s.End()})
		}
	}
	flush()
	return ip
}

// Bounds returns the bounding rectangle over the path's anchor and control
// points. Curves lie within the hull of their control points, so the
// rectangle contains the path but is not necessarily tight.
func (p *Path) Bounds() Rect {
	if len(p.d) < 2 {
		return Rect{}
	}
	x0, y0 := p.d[0], p.d[1]
	x1, y1 := x0, y0
	for i := 2; i+1 < len(p.d); i += 2 {
		x0 = math.Min(x0, p.d[i])
		y0 = math.Min(y0, p.d[i+1])
		x1 = math.Max(x1, p.d[i])
		y1 = math.Max(y1, p.d[i+1])
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

////////////////////////////////////////////////////////////////

// num formats a coordinate with Precision significant digits, compacted for SVG.
func num(f float64) string {
	s := fmt.Sprintf("%.*g", Precision, f)
	return string(minify.Number([]byte(s), Precision))
}

// String returns the path as SVG path data.
func (p *Path) String() string {
	sb := strings.Builder{}
	s := p.Scanner()
	for s.Scan() {
		end := s.End()
		switch s.Cmd() {
		case MoveToCmd:
			sb.WriteString("M")
			sb.WriteString(num(end.X) + " " + num(end.Y))
		case LineToCmd:
			sb.WriteString("L")
			sb.WriteString(num(end.X) + " " + num(end.Y))
		case QuadToCmd:
			cp := s.CP1()
			sb.WriteString("Q")
			sb.WriteString(num(cp.X) + " " + num(cp.Y) + " " + num(end.X) + " " + num(end.Y))
		case CubeToCmd:
			cp1, cp2 := s.CP1(), s.CP2()
			sb.WriteString("C")
			sb.WriteString(num(cp1.X) + " " + num(cp1.Y) + " " + num(cp2.X) + " " + num(cp2.Y) + " " + num(end.X) + " " + num(end.Y))
		case CloseCmd:
			sb.WriteString("z")
		}
	}
	return sb.String()
}
