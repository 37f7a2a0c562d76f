package ribbon

// Polyline defines a list of points in 2D space that form a polyline. If the last coordinate equals the first coordinate, we assume the polyline to close itself.
type Polyline struct {
	coords []Point
}

// PolylineFromPath returns a polyline from the given path, which must consist
// of straight segments only.
func PolylineFromPath(p *Path) (*Polyline, error) {
	pts, closed, err := p.Points()
	if err != nil {
		return nil, err
	}
	pl := &Polyline{coords: pts}
	if closed {
		pl.Close()
	}
	return pl, nil
}

// Empty returns true if the polyline has fewer than two points.
func (p *Polyline) Empty() bool {
	return len(p.coords) < 2
}

// Add adds a new point to the polyline.
func (p *Polyline) Add(x, y float64) *Polyline {
	p.coords = append(p.coords, Point{x, y})
	return p
}

// Close adds a new point equal to the first, closing the polyline.
func (p *Polyline) Close() *Polyline {
	if 0 < len(p.coords) && !p.Closed() {
		p.coords = append(p.coords, p.coords[0])
	}
	return p
}

// Closed returns true if the last point coincides with the first.
func (p *Polyline) Closed() bool {
	return 1 < len(p.coords) && p.coords[0].Equals(p.coords[len(p.coords)-1])
}

// Coords returns the list of coordinates of the polyline.
func (p *Polyline) Coords() []Point {
	return p.coords
}

// ToPath converts the polyline to a path. If the last coordinate equals the first one, we close the path.
func (p *Polyline) ToPath() *Path {
	if len(p.coords) < 2 {
		return &Path{}
	}

	closed := p.Closed()
	coords := p.coords
	if closed {
		coords = coords[:len(coords)-1]
	}

	q := &Path{}
	q.MoveTo(coords[0].X, coords[0].Y)
	for _, coord := range coords[1:] {
		q.LineTo(coord.X, coord.Y)
	}
	if closed {
		q.Close()
	}
	return q
}

// Ribbon computes the constant-width ribbon outline of the polyline, see
// Ribbon. The duplicate closing point of a closed polyline is not treated as
// a vertex of its own.
func (p *Polyline) Ribbon(opts Options) (outer, inner *Path, err error) {
	coords := p.coords
	closed := p.Closed()
	if closed {
		coords = coords[:len(coords)-1]
	}
	return Ribbon(coords, closed, opts)
}
