package ribbon

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestAngleNorm(t *testing.T) {
	test.Float(t, angleNorm(0.0), 0.0)
	test.Float(t, angleNorm(1.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(2.0*math.Pi), 0.0)
	test.Float(t, angleNorm(-1.0*math.Pi), 1.0*math.Pi)
}

func TestPoint(t *testing.T) {
	p := Point{3, 4}
	test.That(t, !p.IsZero())
	test.That(t, Point{}.IsZero())
	test.T(t, p.Neg(), Point{-3, -4})
	test.T(t, p.Add(Point{1, 1}), Point{4, 5})
	test.T(t, p.Sub(Point{1, 1}), Point{2, 3})
	test.T(t, p.Mul(2.0), Point{6, 8})
	test.T(t, p.Div(2.0), Point{1.5, 2})
	test.T(t, p.Rot90CW(), Point{4, -3})
	test.T(t, p.Rot90CCW(), Point{-4, 3})
	test.Float(t, p.Dot(Point{3, 0}), 9.0)
	test.Float(t, p.PerpDot(Point{3, 0}), p.Rot90CCW().Dot(Point{3, 0}))
	test.Float(t, p.Length(), 5.0)
	test.Float(t, Point{1, 0}.AngleBetween(Point{0, 1}), 0.5*math.Pi)
	test.That(t, p.Norm(1.0).Equals(Point{0.6, 0.8}))
	test.That(t, Point{}.Norm(1.0).Equals(Point{}))
	test.That(t, p.Interpolate(Point{5, 6}, 0.5).Equals(Point{4, 5}))
}

func TestMatrix(t *testing.T) {
	p := Point{3, 4}
	test.That(t, Identity.Dot(p).Equals(p))
	test.That(t, Identity.Translate(1, 2).Dot(p).Equals(Point{4, 6}))
	test.That(t, Identity.Scale(2, 3).Dot(p).Equals(Point{6, 12}))
	test.That(t, Identity.Rotate(90).Dot(Point{1, 0}).Equals(Point{0, 1}))
	test.That(t, Identity.RotateAbout(180, 1, 1).Dot(Point{0, 0}).Equals(Point{2, 2}))

	// concatenation evaluates right-to-left
	m := Identity.Translate(10, 0).Scale(2, 2)
	test.That(t, m.Dot(Point{1, 1}).Equals(Point{12, 2}))
}

func TestRect(t *testing.T) {
	r := Rect{0, 0, 5, 5}
	test.T(t, r.Move(Point{1, 2}), Rect{1, 2, 5, 5})
	test.T(t, r.Add(Rect{4, 4, 4, 4}), Rect{0, 0, 8, 8})
	test.T(t, r.Add(Rect{}), r)
	test.T(t, Rect{}.Add(r), r)
}
