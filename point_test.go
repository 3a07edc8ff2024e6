package glyph

import (
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(3, 4).Sub(Pt(1, 1)), Vec(2, 3))
	diff(t, Pt(0, 0).Midpoint(Pt(10, -4)), Pt(5, -2))
	diff(t, Pt(0, 0).Lerp(Pt(10, 20), 0.25), Pt(2.5, 5))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestPointNear(t *testing.T) {
	tests := []struct {
		a, b Point
		eps  float64
		want bool
	}{
		{Pt(0, 0), Pt(0, 0), 0, true},
		{Pt(0, 0), Pt(1e-5, -1e-5), 1e-4, true},
		{Pt(0, 0), Pt(1e-3, 0), 1e-4, false},
		{Pt(0, 0), Pt(0, 1e-3), 1e-4, false},
	}
	for _, tt := range tests {
		if got := tt.a.Near(tt.b, tt.eps); got != tt.want {
			t.Errorf("%v.Near(%v, %g) = %t, want %t", tt.a, tt.b, tt.eps, got, tt.want)
		}
	}
}
