package glyph

import (
	"math"
)

// arc is a circular arc around Center whose radius changes linearly from R0
// to R1 over the sweep. Positive sweeps run anti-clockwise.
type arc struct {
	Center     Point
	R0, R1     float64
	StartAngle float64
	SweepAngle float64
}

// arcBetween returns the arc around center that starts at a, ends at b and
// sweeps by the given angle.
func arcBetween(center, a, b Point, sweep float64) arc {
	return arc{
		Center:     center,
		R0:         a.Distance(center),
		R1:         b.Distance(center),
		StartAngle: a.Sub(center).Angle(),
		SweepAngle: sweep,
	}
}

// cubics approximates the arc with cubic Béziers.
func (a arc) cubics(tolerance float64) []CubicBez {
	scaledError := max(a.R0, a.R1) / tolerance
	// Number of subdivisions per full turn based on error tolerance.
	nError := max(math.Pow(1.1163*scaledError, 1.0/6.0), 3.999_999)
	n := max(math.Ceil(nError*math.Abs(a.SweepAngle)*(1.0/(2.0*math.Pi))), 1)
	angleStep := a.SweepAngle / n
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.SweepAngle)

	out := make([]CubicBez, int(n))
	angle0 := a.StartAngle
	r0 := a.R0
	p0 := a.Center.Translate(VecFromAngle(angle0).Mul(r0))
	for i := range out {
		angle1 := angle0 + angleStep
		r1 := a.R0 + (a.R1-a.R0)*float64(i+1)/n
		p3 := a.Center.Translate(VecFromAngle(angle1).Mul(r1))
		p1 := p0.Translate(VecFromAngle(angle0 + math.Pi/2).Mul(armLen * r0))
		p2 := p3.Translate(VecFromAngle(angle1 + math.Pi/2).Mul(-armLen * r1))
		out[i] = CubicBez{p0, p1, p2, p3}
		angle0, r0, p0 = angle1, r1, p3
	}
	return out
}

// arcTo is like cubics but pins the endpoints to a and b exactly, so the arc
// chains with neighbouring segments.
func arcTo(center, a, b Point, sweep, tolerance float64) []CubicBez {
	segs := arcBetween(center, a, b, sweep).cubics(tolerance)
	segs[0].P0 = a
	segs[len(segs)-1].P3 = b
	return segs
}
