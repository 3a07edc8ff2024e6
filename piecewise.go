package glyph

import (
	"sort"
)

// Piecewise is a contour resolved into a sequence of cubic Bézier segments.
// It is the common input format for operations and is never stored as
// primary state.
type Piecewise struct {
	Segs   []CubicBez
	Closed bool
}

// NewPiecewise resolves the skeleton of c. The operation is ignored.
func NewPiecewise(c Contour) Piecewise {
	pw := Piecewise{
		Segs:   make([]CubicBez, c.NumSegments()),
		Closed: c.Closed,
	}
	for i := range pw.Segs {
		pw.Segs[i] = c.Segment(i)
	}
	return pw
}

// Arclen returns the total arc length of all segments.
func (pw Piecewise) Arclen(accuracy float64) float64 {
	var l float64
	for _, seg := range pw.Segs {
		l += seg.Arclen(accuracy)
	}
	return l
}

func (pw Piecewise) Start() Point {
	return pw.Segs[0].P0
}

func (pw Piecewise) End() Point {
	return pw.Segs[len(pw.Segs)-1].P3
}

func (pw Piecewise) Transform(aff Affine) Piecewise {
	out := Piecewise{Segs: make([]CubicBez, len(pw.Segs)), Closed: pw.Closed}
	for i, seg := range pw.Segs {
		out.Segs[i] = seg.Transform(aff)
	}
	return out
}

// Reverse returns the same path traversed backwards.
func (pw Piecewise) Reverse() Piecewise {
	out := Piecewise{Segs: make([]CubicBez, len(pw.Segs)), Closed: pw.Closed}
	for i, seg := range pw.Segs {
		out.Segs[len(pw.Segs)-1-i] = seg.Reverse()
	}
	return out
}

// Contour converts the piecewise curve back into a cubic contour. Segments
// that are straight lines produce nodes without handles.
func (pw Piecewise) Contour() Contour {
	c := Contour{Repr: CubicRepresentation, Closed: pw.Closed}
	if len(pw.Segs) == 0 {
		return c
	}
	n := len(pw.Segs) + 1
	if pw.Closed {
		n--
	}
	c.Nodes = make([]Node, n)
	for i := range c.Nodes {
		if i < len(pw.Segs) {
			c.Nodes[i].Pt = pw.Segs[i].P0
		} else {
			c.Nodes[i].Pt = pw.Segs[i-1].P3
		}
	}
	for i, seg := range pw.Segs {
		j := (i + 1) % n
		if seg.IsLinear(linearTolerance) {
			if c.Nodes[j].Type != PointCurve {
				c.Nodes[j].Type = PointLine
			}
			continue
		}
		c.Nodes[i].A = HandleAt(seg.P1)
		c.Nodes[j].B = HandleAt(seg.P2)
		c.Nodes[j].Type = PointCurve
	}
	if !pw.Closed {
		c.Nodes[0].Type = PointMove
	}
	return c
}

// linearTolerance is the distance, in glyph units, within which control
// points are considered to lie on the chord.
const linearTolerance = 1e-9

// measure precomputes the cumulative arc length of every segment.
func (pw Piecewise) measure(accuracy float64) *pathMeasure {
	m := &pathMeasure{
		segs:     pw.Segs,
		cum:      make([]float64, len(pw.Segs)+1),
		accuracy: accuracy,
	}
	for i, seg := range pw.Segs {
		m.cum[i+1] = m.cum[i] + seg.Arclen(accuracy)
	}
	return m
}

// pathMeasure maps arc length positions on a piecewise curve to segment
// parameters.
type pathMeasure struct {
	segs     []CubicBez
	cum      []float64
	accuracy float64
}

func (m *pathMeasure) length() float64 {
	return m.cum[len(m.cum)-1]
}

// locate returns the segment containing arc length s and the parameter
// within it. s is clamped to the length of the path.
func (m *pathMeasure) locate(s float64) (int, float64) {
	if len(m.segs) == 0 {
		return 0, 0
	}
	if s <= 0 {
		return 0, 0
	}
	if s >= m.length() {
		return len(m.segs) - 1, 1
	}
	// First segment whose end lies beyond s.
	i := sort.SearchFloat64s(m.cum[1:], s)
	if i >= len(m.segs) {
		i = len(m.segs) - 1
	}
	segLen := m.cum[i+1] - m.cum[i]
	if segLen == 0 {
		return i, 0
	}
	return i, m.segs[i].SolveForArclen(s-m.cum[i], m.accuracy)
}

// frame returns the point and unit tangent at arc length s. Positions
// beyond either end extrapolate along the end tangents, so a stamp that
// overhangs an open skeleton continues straight.
func (m *pathMeasure) frame(s float64) (Point, Vec2) {
	l := m.length()
	switch {
	case s < 0:
		tan := m.segs[0].Tangent(0)
		return m.segs[0].P0.Translate(tan.Mul(s)), tan
	case s > l:
		last := m.segs[len(m.segs)-1]
		tan := last.Tangent(1)
		return last.P3.Translate(tan.Mul(s - l)), tan
	}
	i, t := m.locate(s)
	return m.segs[i].Eval(t), m.segs[i].Tangent(t)
}

// sub returns the part of the path between arc lengths s0 and s1.
func (m *pathMeasure) sub(s0, s1 float64) Piecewise {
	i0, t0 := m.locate(s0)
	i1, t1 := m.locate(s1)
	var out Piecewise
	if i0 == i1 {
		if t1 > t0 {
			out.Segs = append(out.Segs, m.segs[i0].Subsegment(t0, t1))
		}
		return out
	}
	if t0 < 1 {
		out.Segs = append(out.Segs, m.segs[i0].Subsegment(t0, 1))
	}
	out.Segs = append(out.Segs, m.segs[i0+1:i1]...)
	if t1 > 0 {
		out.Segs = append(out.Segs, m.segs[i1].Subsegment(0, t1))
	}
	return out
}
