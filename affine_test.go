package glyph

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Sub(want).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(FlipY), Pt(3, -4), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}

func TestFrame(t *testing.T) {
	const epsilon = 1e-12
	// Tangent pointing up: local x maps to +y, local y (the normal) maps to -x.
	f := Frame(Pt(10, 20), Vec(0, 1))
	assertNear(t, Pt(0, 0).Transform(f), Pt(10, 20), epsilon)
	assertNear(t, Pt(2, 0).Transform(f), Pt(10, 22), epsilon)
	assertNear(t, Pt(0, 3).Transform(f), Pt(7, 20), epsilon)
	if d := f.Determinant(); math.Abs(d-1) > epsilon {
		t.Errorf("frame is not rigid: determinant %g", d)
	}
}
