package glyph

import (
	"math"
)

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Arclen returns the length of the line.
func (l Line) Arclen(accuracy float64) float64 {
	return l.Length()
}

func (l Line) SolveForArclen(arclen float64, accuracy float64) float64 {
	return arclen / l.P1.Sub(l.P0).Hypot()
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

// Intersect returns the parameters t on l and u on o at which the two
// segments cross. Parallel and coincident segments don't intersect.
func (l Line) Intersect(o Line) (t, u float64, ok bool) {
	const epsilon = 1e-12
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	det := ab.Cross(cd)
	if math.Abs(det) <= epsilon*ab.Hypot()*cd.Hypot() {
		return 0, 0, false
	}
	ac := o.P0.Sub(l.P0)
	t = ac.Cross(cd) / det
	u = ac.Cross(ab) / det
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

// Raise returns the cubic Bézier that traces the line with uniform speed.
// Its arc length is exactly that of the line.
func (l Line) Raise() CubicBez {
	return CubicBez{
		l.P0,
		l.P0.Lerp(l.P1, 1.0/3.0),
		l.P0.Lerp(l.P1, 2.0/3.0),
		l.P1,
	}
}

func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}
