package glyph

import (
	"math"
	"sort"
)

// CubicBez is a cubic Bézier segment. Every segment of a [Piecewise] curve is
// one, whatever the representation of the contour it was resolved from.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// Arclen returns the arclength of a cubic Bézier segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		f := ddNorm2 / dNorm2
		est += wi * f
	}
	if math.IsNaN(est) {
		// dNorm2 will be 0 as c approaches a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += math.Sqrt(2.25) * wi * (dpx + dmx)
	}
	return sum
}

// deCasteljau returns the three interpolation levels of the construction at
// t: the two outer points of the first level's middle, the second level, and
// the point on the curve.
func (c CubicBez) deCasteljau(t float64) (p01, p23, p012, p123, p0123 Point) {
	p01 = c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 = c.P2.Lerp(c.P3, t)
	p012 = p01.Lerp(p12, t)
	p123 = p12.Lerp(p23, t)
	p0123 = p012.Lerp(p123, t)
	return
}

// Eval evaluates the curve at t. The result is bit-for-bit identical to the
// shared point returned by [CubicBez.SubdivideAt] for the same t.
func (c CubicBez) Eval(t float64) Point {
	switch t {
	case 0:
		return c.P0
	case 1:
		return c.P3
	}
	_, _, _, _, p := c.deCasteljau(t)
	return p
}

// SubdivideAt splits the cubic at t using de Casteljau's construction.
//
// The outer endpoints are copied, never recomputed, so re-joining the two
// halves reproduces the original endpoints exactly. The shared point is
// c.Eval(t).
func (c CubicBez) SubdivideAt(t float64) (CubicBez, CubicBez) {
	p01, p23, p012, p123, pm := c.deCasteljau(t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.SubdivideAt(0.5)
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

// Subsegment returns the part of the curve between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

// Deriv returns the derivative at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

// Tangent returns the unit tangent at t. Where the derivative vanishes, as it
// does at colocated handles, the end tangents of [CubicBez.Tangents] are used.
func (c CubicBez) Tangent(t float64) Vec2 {
	const epsilon = 1e-12
	d := c.Deriv(t)
	if d.Hypot2() > epsilon {
		return d.Normalize()
	}
	t0, t1 := c.Tangents()
	if t < 0.5 {
		d = t0
	} else {
		d = t1
	}
	if d.Hypot2() == 0 {
		return Vec2{1, 0}
	}
	return d.Normalize()
}

// Curvature returns the signed curvature at t. It is positive where the curve
// turns left and zero where the first derivative vanishes.
func (c CubicBez) Curvature(t float64) float64 {
	d1 := c.Deriv(t)
	d2 := Vec2(c.Differentiate().Differentiate().Eval(t))
	h := d1.Hypot()
	if h < 1e-12 {
		return 0
	}
	return d1.Cross(d2) / (h * h * h)
}

func (c CubicBez) Extrema() ([4]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [4]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(c.P0, c.P3)
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// Reverse returns the same curve traversed from P3 to P0.
func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

func (c CubicBez) SignedArea() float64 {
	v := c.P0.X*(6.0*c.P1.Y+3.0*c.P2.Y+c.P3.Y) +
		3.0*(c.P1.X*(-2.0*c.P0.Y+c.P2.Y+c.P3.Y)-c.P2.X*(c.P0.Y+c.P1.Y-2.0*c.P3.Y)) -
		c.P3.X*(c.P0.Y+3.0*c.P1.Y+6.0*c.P2.Y)
	return v * (1.0 / 20.0)
}

func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

// IsLinear reports whether the control points lie within tolerance of the
// chord, so the segment can be treated as a straight line.
func (c CubicBez) IsLinear(tolerance float64) bool {
	chord := c.P3.Sub(c.P0)
	l := chord.Hypot()
	if l == 0 {
		return c.P1.Distance(c.P0) <= tolerance && c.P2.Distance(c.P0) <= tolerance
	}
	d1 := math.Abs(chord.Cross(c.P1.Sub(c.P0))) / l
	d2 := math.Abs(chord.Cross(c.P2.Sub(c.P0))) / l
	return d1 <= tolerance && d2 <= tolerance
}

// SolveForArclen returns the parameter t at which the arc length from the
// start of the curve equals arclen.
func (c CubicBez) SolveForArclen(arclen float64, accuracy float64) float64 {
	if arclen <= 0.0 {
		return 0.0
	}
	totalArclen := c.Arclen(accuracy)
	if arclen >= totalArclen {
		return 1.0
	}
	tLast := 0.0
	arclenLast := 0.0
	epsilon := accuracy / totalArclen
	n := 1.0 - min(math.Ceil(math.Log2(epsilon)), 0.0)
	innerAccuracy := accuracy / n
	f := func(t float64) float64 {
		var rangeStart, rangeEnd, dir float64
		if t > tLast {
			rangeStart = tLast
			rangeEnd = t
			dir = 1.0
		} else {
			rangeStart = t
			rangeEnd = tLast
			dir = -1.0
		}
		arc := c.Subsegment(rangeStart, rangeEnd).Arclen(innerAccuracy)
		arclenLast += arc * dir
		tLast = t
		return arclenLast - arclen
	}
	return SolveITP(f, 0.0, 1.0, epsilon, 1, 0.2, -arclen, totalArclen-arclen)
}
