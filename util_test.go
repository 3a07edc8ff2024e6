package glyph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats, and therefore points and vectors, with an absolute
// tolerance suitable for glyph units.
var approx = cmpopts.EquateApprox(0, 1e-9)

// openLine returns an open cubic contour through the given points, with all
// handles colocated.
func openLine(pts ...Point) Contour {
	c := Contour{Repr: CubicRepresentation}
	for _, pt := range pts {
		c.Nodes = append(c.Nodes, Node{Pt: pt, Type: PointLine})
	}
	if len(c.Nodes) > 0 {
		c.Nodes[0].Type = PointMove
	}
	return c
}

func square(x, y, size float64) Contour {
	c := openLine(Pt(x, y), Pt(x+size, y), Pt(x+size, y+size), Pt(x, y+size))
	c.Nodes[0].Type = PointLine
	c.Closed = true
	return c
}

// cmpApprox compares floats with an absolute tolerance of margin.
func cmpApprox(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}
