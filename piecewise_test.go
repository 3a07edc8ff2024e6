package glyph

import (
	"testing"
)

func TestPiecewiseArclen(t *testing.T) {
	pw := NewPiecewise(openLine(Pt(0, 0), Pt(100, 0), Pt(100, 50)))
	diff(t, 150.0, pw.Arclen(DefaultAccuracy), approx)

	closed := NewPiecewise(square(0, 0, 10))
	if len(closed.Segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(closed.Segs))
	}
	diff(t, 40.0, closed.Arclen(DefaultAccuracy), approx)
}

func TestPiecewiseContour(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(100, 0), Pt(100, 50))
	got := NewPiecewise(c).Contour()
	diff(t, c, got, approx)

	sq := square(0, 0, 10)
	diff(t, sq, NewPiecewise(sq).Contour(), approx)

	curved := openLine(Pt(0, 0), Pt(100, 0))
	curved.Nodes[0].A = HandleAt(Pt(0, 50))
	curved.Nodes[1].B = HandleAt(Pt(100, 50))
	curved.Nodes[1].Type = PointCurve
	diff(t, curved, NewPiecewise(curved).Contour())
}

func TestPathMeasure(t *testing.T) {
	m := NewPiecewise(openLine(Pt(0, 0), Pt(100, 0), Pt(100, 50))).measure(DefaultAccuracy)
	diff(t, 150.0, m.length(), approx)

	tests := []struct {
		s   float64
		pt  Point
		tan Vec2
	}{
		{0, Pt(0, 0), Vec(1, 0)},
		{25, Pt(25, 0), Vec(1, 0)},
		{125, Pt(100, 25), Vec(0, 1)},
		{150, Pt(100, 50), Vec(0, 1)},
		// Beyond the ends, frames continue along the end tangents.
		{-10, Pt(-10, 0), Vec(1, 0)},
		{160, Pt(100, 60), Vec(0, 1)},
	}
	opt := cmpApprox(1e-4)
	for _, tt := range tests {
		pt, tan := m.frame(tt.s)
		diff(t, tt.pt, pt, opt)
		diff(t, tt.tan, tan, opt)
	}
}

func TestPathMeasureSub(t *testing.T) {
	m := NewPiecewise(openLine(Pt(0, 0), Pt(100, 0), Pt(100, 50))).measure(DefaultAccuracy)
	opt := cmpApprox(1e-4)

	sub := m.sub(50, 125)
	if len(sub.Segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(sub.Segs))
	}
	diff(t, Pt(50, 0), sub.Start(), opt)
	diff(t, Pt(100, 25), sub.End(), opt)
	diff(t, 75.0, sub.Arclen(DefaultAccuracy), opt)

	within := m.sub(10, 20)
	if len(within.Segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(within.Segs))
	}
	diff(t, Pt(10, 0), within.Start(), opt)
	diff(t, Pt(20, 0), within.End(), opt)
}
