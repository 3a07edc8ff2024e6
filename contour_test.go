package glyph

import (
	"testing"
)

func TestContourSegment(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(30, 0))
	diff(t, Line{Pt(0, 0), Pt(30, 0)}.Raise(), c.Segment(0))

	c.Nodes[0].A = HandleAt(Pt(10, 10))
	diff(t, CubicBez{Pt(0, 0), Pt(10, 10), Pt(30, 0), Pt(30, 0)}, c.Segment(0))

	q := Contour{
		Repr: QuadraticRepresentation,
		Nodes: []Node{
			{Pt: Pt(0, 0), A: HandleAt(Pt(15, 30)), Type: PointMove},
			{Pt: Pt(30, 0), B: HandleAt(Pt(15, 30)), Type: PointQCurve},
		},
	}
	diff(t, QuadBez{Pt(0, 0), Pt(15, 30), Pt(30, 0)}.Raise(), q.Segment(0))
}

func TestContourNumSegments(t *testing.T) {
	tests := []struct {
		c    Contour
		want int
	}{
		{Contour{}, 0},
		{openLine(Pt(0, 0)), 0},
		{openLine(Pt(0, 0), Pt(1, 0), Pt(2, 0)), 2},
		{square(0, 0, 10), 4},
	}
	for _, tt := range tests {
		if got := tt.c.NumSegments(); got != tt.want {
			t.Errorf("got %d segments, want %d", got, tt.want)
		}
	}
}

func TestContourEnds(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	diff(t, Pt(0, 0), c.Start())
	diff(t, Pt(10, 10), c.End())

	sq := square(0, 0, 10)
	diff(t, Pt(0, 0), sq.End())
}

func TestContourSignedArea(t *testing.T) {
	sq := square(0, 0, 10)
	diff(t, 100.0, sq.SignedArea(), approx)
	diff(t, -100.0, sq.Reverse().SignedArea(), approx)
}

func TestContourBoundingBox(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(100, 0))
	c.Nodes[0].A = HandleAt(Pt(0, 100))
	c.Nodes[1].B = HandleAt(Pt(100, 100))
	diff(t, Rect{0, 0, 100, 75}, c.BoundingBox(), approx)

	o := Outline{square(0, 0, 10), square(20, -5, 10)}
	diff(t, Rect{0, -5, 30, 10}, o.BoundingBox())
}

func TestContourReverse(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(10, 0), Pt(20, 0))
	c.Nodes[0].A = HandleAt(Pt(3, 5))
	c.Nodes[1].B = HandleAt(Pt(7, 5))
	c.Op = NewVariableWidthStroke(c, 10)

	r := c.Reverse()
	if r.Op != nil {
		t.Error("reversing kept the operation")
	}
	diff(t, c.Segment(0).Reverse(), r.Segment(1), approx)
	diff(t, c.Segment(1).Reverse(), r.Segment(0), approx)
}

func TestContourReverseQuadratic(t *testing.T) {
	c := Contour{
		Repr: QuadraticRepresentation,
		Nodes: []Node{
			{Pt: Pt(0, 0), A: HandleAt(Pt(5, 10)), Type: PointMove},
			{Pt: Pt(10, 0), B: HandleAt(Pt(5, 10)), A: HandleAt(Pt(15, -10)), Type: PointQCurve},
			{Pt: Pt(20, 0), B: HandleAt(Pt(15, -10)), Type: PointQCurve},
		},
	}
	r := c.Reverse()
	diff(t, c.Segment(1).Reverse(), r.Segment(0), approx)
	diff(t, c.Segment(0).Reverse(), r.Segment(1), approx)
}

func TestContourCloneIndependence(t *testing.T) {
	c := openLine(Pt(0, 0), Pt(10, 0))
	cl := c.Clone()
	cl.Nodes[0].Pt = Pt(5, 5)
	diff(t, Pt(0, 0), c.Nodes[0].Pt)
}

func TestOutlineTransform(t *testing.T) {
	o := Outline{openLine(Pt(1, 2), Pt(3, 4))}
	got := o.Transform(Translate(Vec(10, 0)))
	diff(t, Pt(11, 2), got[0].Nodes[0].Pt)
	diff(t, Pt(1, 2), o[0].Nodes[0].Pt)
	if n := (Outline{square(0, 0, 1), openLine(Pt(0, 0), Pt(1, 1))}).NumNodes(); n != 6 {
		t.Errorf("got %d nodes, want 6", n)
	}
}
