package glyph

import (
	"math"
	"testing"
)

func TestArcCubics(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		sweep float64
	}{
		{"quarter", 0, math.Pi / 2},
		{"half clockwise", math.Pi / 3, -math.Pi},
		{"full", 1, 2 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := arc{Center: Pt(5, -5), R0: 10, R1: 10, StartAngle: tt.start, SweepAngle: tt.sweep}
			segs := a.cubics(1e-3)
			for i, seg := range segs {
				for j := range 11 {
					u := float64(j) / 10
					if d := seg.Eval(u).Distance(a.Center); math.Abs(d-10) > 1e-3 {
						t.Errorf("segment %d at %v is %v off the circle", i, u, d-10)
					}
				}
				if i > 0 && seg.P0 != segs[i-1].P3 {
					t.Errorf("segment %d doesn't start where segment %d ends", i, i-1)
				}
			}
			end := a.Center.Translate(VecFromAngle(tt.start + tt.sweep).Mul(10))
			diff(t, end, segs[len(segs)-1].P3, cmpApprox(1e-9))
		})
	}
}

func TestArcSegmentCount(t *testing.T) {
	a := arc{R0: 10, R1: 10, SweepAngle: math.Pi / 2}
	if n := len(a.cubics(1e-3)); n != 2 {
		t.Errorf("got %d segments for a quarter turn, want 2", n)
	}
	a.SweepAngle = 2 * math.Pi
	if n := len(a.cubics(1e-3)); n != 5 {
		t.Errorf("got %d segments for a full turn, want 5", n)
	}
	a.SweepAngle = 1e-6
	if n := len(a.cubics(1e-3)); n != 1 {
		t.Errorf("got %d segments for a tiny arc, want 1", n)
	}
}

func TestArcTo(t *testing.T) {
	a, b := Pt(10, 0), Pt(0, 20)
	segs := arcTo(Pt(0, 0), a, b, math.Pi/2, 1e-3)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].P0 != a || segs[1].P3 != b {
		t.Errorf("arc runs from %v to %v, want %v to %v", segs[0].P0, segs[1].P3, a, b)
	}
	// The radius grows linearly with the angle.
	diff(t, 15.0, segs[0].P3.Distance(Pt(0, 0)), cmpApprox(1e-9))
	diff(t, math.Pi/4, segs[0].P3.Sub(Pt(0, 0)).Angle(), cmpApprox(1e-9))
}
