package glyph

import (
	"errors"
	"math"
	"testing"
)

// butt returns a stroke of uniform width for c with butt caps and the given
// join.
func butt(c Contour, width float64, join Join) Contour {
	v := NewVariableWidthStroke(c, width)
	v.StartCap, v.EndCap = ButtCap, ButtCap
	v.Join = join
	c.Op = v
	return c
}

func nodePoints(c Contour) []Point {
	var out []Point
	for _, n := range c.Nodes {
		out = append(out, n.Pt)
	}
	return out
}

func TestStrokeUniformWidth(t *testing.T) {
	c := butt(openLine(Pt(0, 0), Pt(100, 0)), 20, RoundJoin)
	got, err := TryBuild(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d contours, want 1", len(got))
	}
	want := []Point{Pt(0, 10), Pt(100, 10), Pt(100, -10), Pt(0, -10)}
	diff(t, want, nodePoints(got[0]))
	if !got[0].Closed {
		t.Error("stroke outline isn't closed")
	}
	// Offsets of straight segments are exact.
	for _, n := range got[0].Nodes {
		if d := math.Abs(n.Pt.Y); d != 10 {
			t.Errorf("%v is %v away from the skeleton, want 10", n.Pt, d)
		}
	}
}

func TestStrokeVaryingWidth(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(100, 0))
	v := NewVariableWidthStroke(c, 0)
	v.StartCap, v.EndCap = ButtCap, ButtCap
	v.Handles[0] = WidthHandle{Left: 10, Right: 5}
	v.Handles[1] = WidthHandle{Left: 20, Right: 15}
	c.Op = v

	got := Build(c)
	want := []Point{Pt(0, 10), Pt(100, 20), Pt(100, -15), Pt(0, -5)}
	diff(t, want, nodePoints(got[0]))
}

func TestStrokeInterpNone(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(100, 0))
	v := NewVariableWidthStroke(c, 0)
	v.StartCap, v.EndCap = ButtCap, ButtCap
	v.Handles[0] = WidthHandle{Left: 10, Right: 10, Interp: InterpNone}
	v.Handles[1] = WidthHandle{Left: 20, Right: 20}
	c.Op = v

	got := Build(c)
	want := []Point{Pt(0, 10), Pt(100, 10), Pt(100, -10), Pt(0, -10)}
	diff(t, want, nodePoints(got[0]))
}

func TestStrokeTangentOffset(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(100, 0))
	v := NewVariableWidthStroke(c, 20)
	v.StartCap, v.EndCap = ButtCap, ButtCap
	v.Handles[1].Tangent = 5
	c.Op = v

	got := Build(c)
	want := []Point{Pt(0, 10), Pt(105, 10), Pt(105, -10), Pt(0, -10)}
	diff(t, want, nodePoints(got[0]))
}

func TestStrokeCaps(t *testing.T) {
	tests := []struct {
		cap  Cap
		want Rect
	}{
		{ButtCap, Rect{0, -10, 100, 10}},
		{SquareCap, Rect{-10, -10, 110, 10}},
		{RoundCap, Rect{-10, -10, 110, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			c := openLine(Pt(0, 0), Pt(100, 0))
			v := NewVariableWidthStroke(c, 20)
			v.StartCap, v.EndCap = tt.cap, tt.cap
			c.Op = v
			got, err := TryBuild(c)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, tt.want, got.BoundingBox(), cmpApprox(1e-3))
		})
	}
}

func TestStrokeRoundCapIsRound(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(100, 0))
	c.Op = NewVariableWidthStroke(c, 20)
	out := Build(c)[0]
	for i := range out.NumSegments() {
		seg := out.Segment(i)
		if max(seg.P0.X, seg.P3.X) > 1 {
			// A side or the end cap.
			continue
		}
		for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
			if r := seg.Eval(u).Distance(Pt(0, 0)); math.Abs(r-10) > 1e-3 {
				t.Errorf("cap point %v at radius %v, want 10", seg.Eval(u), r)
			}
		}
	}
}

func TestStrokeJoins(t *testing.T) {
	// A left turn: the right side is on the outside.
	skel := openLine(Pt(0, 0), Pt(100, 0), Pt(100, 100))
	corner := Pt(110, -10)

	tests := []struct {
		join       Join
		miterLimit float64
		wantCorner bool
	}{
		{BevelJoin, 4, false},
		{MiterJoin, 4, true},
		{MiterJoin, 1, false},
		{RoundJoin, 4, false},
	}
	for _, tt := range tests {
		c := butt(skel, 20, tt.join)
		v := c.Op.(VariableWidthStroke)
		v.MiterLimit = tt.miterLimit
		c.Op = v

		got, err := TryBuild(c)
		if err != nil {
			t.Fatal(err)
		}
		if has := hasNode(got, corner); has != tt.wantCorner {
			t.Errorf("%s join with limit %v: corner present = %t, want %t", tt.join, tt.miterLimit, has, tt.wantCorner)
		}
		diff(t, Rect{0, -10, 110, 100}, got.BoundingBox(), cmpApprox(1e-3))
		// The inner side is always connected directly.
		if !hasNode(got, Pt(100, 10)) || !hasNode(got, Pt(90, 0)) {
			t.Errorf("%s join: inner offsets missing", tt.join)
		}
	}
}

func TestStrokeRoundJoin(t *testing.T) {
	c := butt(openLine(Pt(0, 0), Pt(100, 0), Pt(100, 100)), 20, RoundJoin)
	out := Build(c)[0]
	found := false
	for i := range out.NumSegments() {
		seg := out.Segment(i)
		// The right side is traversed backwards.
		if seg.P0 != Pt(110, 0) {
			continue
		}
		found = true
		mid := seg.Eval(0.5)
		if r := mid.Distance(Pt(100, 0)); math.Abs(r-10) > 1e-3 {
			t.Errorf("join midpoint %v at radius %v, want 10", mid, r)
		}
		if mid.X <= 100 || mid.Y >= 0 {
			t.Errorf("join midpoint %v isn't on the outside of the turn", mid)
		}
	}
	if !found {
		t.Error("no join starting at the outer offset")
	}
}

func TestStrokeCurve(t *testing.T) {
	// A quarter circle of radius 100 around the origin, turning left.
	const k = 0.5522847498307936 * 100
	c := Contour{
		Repr: CubicRepresentation,
		Nodes: []Node{
			{Pt: Pt(100, 0), A: HandleAt(Pt(100, k)), Type: PointMove},
			{Pt: Pt(0, 100), B: HandleAt(Pt(k, 100)), Type: PointCurve},
		},
	}
	c = butt(c, 20, RoundJoin)
	out := Build(c)[0]

	for i := range out.NumSegments() {
		seg := out.Segment(i)
		r0 := seg.P0.Distance(Pt(0, 0))
		r3 := seg.P3.Distance(Pt(0, 0))
		if math.Abs(r0-r3) > 1 {
			// A cap.
			continue
		}
		if math.Abs(r0-90) > 0.05 && math.Abs(r0-110) > 0.05 {
			t.Errorf("offset node %v at radius %v, want 90 or 110", seg.P0, r0)
		}
		for _, u := range []float64{0.25, 0.5, 0.75} {
			if r := seg.Eval(u).Distance(Pt(0, 0)); math.Abs(r-r0) > 0.05 {
				t.Errorf("segment %d at %v: radius %v, want %v", i, u, r, r0)
			}
		}
	}
}

func TestStrokeClosed(t *testing.T) {
	sq := square(0, 0, 100)
	for _, skel := range []Contour{sq, sq.Reverse()} {
		c := butt(skel, 20, MiterJoin)
		got, err := TryBuild(c)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d contours, want 2", len(got))
		}
		external, internal := got[0], got[1]
		diff(t, Rect{-10, -10, 110, 110}, external.BoundingBox())
		diff(t, Rect{0, 0, 100, 100}, internal.BoundingBox())
		if external.SignedArea()*internal.SignedArea() >= 0 {
			t.Error("external and internal contours have the same orientation")
		}

		v := c.Op.(VariableWidthStroke)
		v.RemoveInternal = true
		c.Op = v
		diff(t, Outline{external}, Build(c))

		v.RemoveInternal, v.RemoveExternal = false, true
		c.Op = v
		diff(t, Outline{internal}, Build(c))
	}
}

func TestStrokeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		err  error
	}{
		{"single node", openLine(Pt(0, 0)), ErrDegenerateSkeleton},
		{"coincident nodes", openLine(Pt(5, 5), Pt(5, 5)), ErrDegenerateSkeleton},
		{"empty", Contour{}, ErrHandleCount},
	}
	for _, tt := range tests {
		c := tt.c
		c.Op = NewVariableWidthStroke(c, 10)
		if _, err := TryBuild(c); !errors.Is(err, tt.err) {
			t.Errorf("%s: got error %v, want %v", tt.name, err, tt.err)
		}
	}

	// Zero-length segments are skipped.
	c := butt(openLine(Pt(0, 0), Pt(0, 0), Pt(100, 0)), 20, RoundJoin)
	got, err := TryBuild(c)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(0, 10), Pt(100, 10), Pt(100, -10), Pt(0, -10)}, nodePoints(got[0]))
}

func TestSetHandle(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(50, 0), Pt(100, 0))
	v := NewVariableWidthStroke(c, 20)

	got := v.SetHandle(1, SideLeft, 4, 3)
	diff(t, WidthHandle{Left: 4, Right: 4, Tangent: 3}, got.Handles[1])
	diff(t, WidthHandle{Left: 10, Right: 10}, v.Handles[1])

	v.Mirror = false
	got = v.SetHandle(1, SideRight, 4, 3)
	diff(t, WidthHandle{Left: 10, Right: 4, Tangent: 3}, got.Handles[1])

	v.ConstrainNormal = true
	got = v.SetHandle(0, SideLeft, -2, 3)
	diff(t, WidthHandle{Left: 0, Right: 10}, got.Handles[0])

	diff(t, v, v.SetHandle(3, SideLeft, 1, 1))
	diff(t, v, v.SetHandle(-1, SideLeft, 1, 1))
}

func TestSetAllHandles(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(50, 0), Pt(100, 0))
	v := NewVariableWidthStroke(c, 20)
	v.Mirror = false
	got := v.SetAllHandles(SideLeft, 3)
	for i, h := range got.Handles {
		diff(t, WidthHandle{Left: 3, Right: 10}, h)
		diff(t, WidthHandle{Left: 10, Right: 10}, v.Handles[i])
	}
}

func TestStrokeEnumStrings(t *testing.T) {
	diff(t, "miter", MiterJoin.String())
	diff(t, "square", SquareCap.String())
	diff(t, "none", InterpNone.String())
	diff(t, "unknown", Join(9).String())
}

func BenchmarkStroke(b *testing.B) {
	c := square(0, 0, 100)
	c.Nodes[1].A = HandleAt(Pt(120, 30))
	c.Nodes[2].B = HandleAt(Pt(120, 70))
	c.Nodes[2].Type = PointCurve
	c.Op = NewVariableWidthStroke(c, 10)

	for range b.N {
		Build(c)
	}
}
