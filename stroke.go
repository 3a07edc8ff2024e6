package glyph

import (
	"hash/maphash"
	"math"
	"slices"
)

// Join defines the connection between two segments of a stroke.
type Join int

const (
	// A straight line connecting the segments.
	BevelJoin Join = iota
	// The segments are extended to their natural intersection point.
	MiterJoin
	// An arc between the segments.
	RoundJoin
)

func (j Join) String() string {
	switch j {
	case BevelJoin:
		return "bevel"
	case MiterJoin:
		return "miter"
	case RoundJoin:
		return "round"
	default:
		return "unknown"
	}
}

// Cap defines the shape to be drawn at the ends of a stroke.
type Cap int

const (
	// Flat cap.
	ButtCap Cap = iota
	// Square cap extending past the end by the stroke's half width.
	SquareCap
	// Rounded cap with radius equal to the stroke's half width.
	RoundCap
)

func (c Cap) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "unknown"
	}
}

// Side selects one side of a stroke, as seen when walking along the skeleton.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Interpolation controls how a stroke's width changes between two nodes.
type Interpolation int

const (
	// The width changes linearly towards the next node's width.
	InterpLinear Interpolation = iota
	// The width stays constant until the next node.
	InterpNone
)

func (i Interpolation) String() string {
	switch i {
	case InterpLinear:
		return "linear"
	case InterpNone:
		return "none"
	default:
		return "unknown"
	}
}

// WidthHandle holds the stroke's extent at one skeleton node. Left and Right
// are distances from the skeleton along its normal; Tangent shifts both
// offset points along the skeleton's direction.
type WidthHandle struct {
	Left    float64
	Right   float64
	Tangent float64
	Interp  Interpolation
}

// defaultWidthHandle is used when a stroke without handles has to grow.
var defaultWidthHandle = WidthHandle{Left: 10, Right: 10}

// VariableWidthStroke outlines its skeleton with a stroke whose width varies
// from node to node.
type VariableWidthStroke struct {
	// Handles has one entry per skeleton node.
	Handles    []WidthHandle
	StartCap   Cap
	EndCap     Cap
	Join       Join
	MiterLimit float64
	// Mirror makes handle edits apply to both sides.
	Mirror bool
	// ConstrainNormal keeps handle edits on the normal, discarding tangent
	// offsets.
	ConstrainNormal bool
	// For closed skeletons, drop the contour inside or outside of the
	// skeleton.
	RemoveInternal bool
	RemoveExternal bool
}

var _ Operation = VariableWidthStroke{}

// NewVariableWidthStroke returns a stroke of uniform width for c, with one
// handle per node and the given total width.
func NewVariableWidthStroke(c Contour, width float64) VariableWidthStroke {
	v := VariableWidthStroke{
		Handles:    make([]WidthHandle, len(c.Nodes)),
		StartCap:   RoundCap,
		EndCap:     RoundCap,
		Join:       RoundJoin,
		MiterLimit: 4,
		Mirror:     true,
	}
	for i := range v.Handles {
		v.Handles[i] = WidthHandle{Left: width / 2, Right: width / 2}
	}
	return v
}

func (VariableWidthStroke) Kind() OperationKind { return VariableWidthStrokeKind }

// SetHandle returns v with the handle at idx moved. normal is the new
// distance of side from the skeleton and tangent the new tangent offset.
// Mirror applies the distance to both sides and ConstrainNormal discards the
// tangent offset. Out-of-range indices leave v unchanged.
func (v VariableWidthStroke) SetHandle(idx int, side Side, normal, tangent float64) VariableWidthStroke {
	if idx < 0 || idx >= len(v.Handles) {
		Logger().Debug("width handle index out of range", "idx", idx, "len", len(v.Handles))
		return v
	}
	v.Handles = slices.Clone(v.Handles)
	v.Handles[idx] = v.setSide(v.Handles[idx], side, normal)
	if v.ConstrainNormal {
		tangent = 0
	}
	v.Handles[idx].Tangent = tangent
	return v
}

// SetAllHandles returns v with side set to width at every node.
func (v VariableWidthStroke) SetAllHandles(side Side, width float64) VariableWidthStroke {
	v.Handles = slices.Clone(v.Handles)
	for i, h := range v.Handles {
		v.Handles[i] = v.setSide(h, side, width)
	}
	return v
}

func (v VariableWidthStroke) setSide(h WidthHandle, side Side, width float64) WidthHandle {
	width = max(width, 0)
	if v.Mirror {
		h.Left, h.Right = width, width
		return h
	}
	switch side {
	case SideLeft:
		h.Left = width
	case SideRight:
		h.Right = width
	}
	return h
}

func (v VariableWidthStroke) style() strokeStyle {
	return strokeStyle{
		startCap:   v.StartCap,
		endCap:     v.EndCap,
		join:       v.Join,
		miterLimit: v.MiterLimit,
	}
}

func (v VariableWidthStroke) build(c Contour) (Outline, error) {
	if len(v.Handles) == 0 || len(v.Handles) != len(c.Nodes) {
		return nil, ErrHandleCount
	}
	if len(c.Nodes) < 2 {
		return nil, ErrDegenerateSkeleton
	}
	var spans []strokeSpan
	for i := range c.NumSegments() {
		seg := c.Segment(i)
		if isPoint(seg) {
			continue
		}
		h0 := v.Handles[i]
		h1 := v.Handles[(i+1)%len(c.Nodes)]
		if h0.Interp == InterpNone {
			h1 = h0
		}
		spans = append(spans, strokeSpan{
			seg:     seg,
			left:    [2]float64{h0.Left, h1.Left},
			right:   [2]float64{h0.Right, h1.Right},
			tangent: [2]float64{h0.Tangent, h1.Tangent},
		})
	}
	if len(spans) == 0 {
		return nil, ErrDegenerateSkeleton
	}

	style := v.style()
	if !c.Closed {
		return Outline{style.strokeOpen(spans)}, nil
	}
	left, right := style.strokeClosed(spans)
	// The side facing the inside of an anti-clockwise skeleton is its left.
	external, internal := left, right
	if c.SignedArea() > 0 {
		external, internal = right, left
	}
	var out Outline
	if !v.RemoveExternal {
		out = append(out, external)
	}
	if !v.RemoveInternal {
		out = append(out, internal)
	}
	return out, nil
}

func (v VariableWidthStroke) sub(c Contour, begin, end int) Operation {
	begin, end = min(begin, len(v.Handles)), min(end, len(v.Handles))
	v.Handles = slices.Clone(v.Handles[begin:end])
	return v
}

func (v VariableWidthStroke) append(c, other Contour) (Operation, error) {
	handles := slices.Clone(v.Handles)
	if o, ok := other.Op.(VariableWidthStroke); ok {
		handles = append(handles, o.Handles...)
	} else {
		last := defaultWidthHandle
		if len(handles) > 0 {
			last = handles[len(handles)-1]
		}
		for range other.Nodes {
			handles = append(handles, last)
		}
	}
	v.Handles = handles
	return v, nil
}

func (v VariableWidthStroke) insert(c Contour, idx int) Operation {
	idx = min(idx, len(v.Handles))
	var h WidthHandle
	switch {
	case len(v.Handles) == 0:
		h = defaultWidthHandle
	case idx == 0:
		h = v.Handles[0]
	case idx == len(v.Handles):
		h = v.Handles[idx-1]
	default:
		a, b := v.Handles[idx-1], v.Handles[idx]
		h = WidthHandle{
			Left:    (a.Left + b.Left) / 2,
			Right:   (a.Right + b.Right) / 2,
			Tangent: (a.Tangent + b.Tangent) / 2,
			Interp:  a.Interp,
		}
	}
	v.Handles = slices.Insert(slices.Clone(v.Handles), idx, h)
	return v
}

func (v VariableWidthStroke) hash(h *maphash.Hash) {
	hashInt(h, int(v.Kind()))
	hashInt(h, len(v.Handles))
	for _, wh := range v.Handles {
		hashFloat(h, wh.Left)
		hashFloat(h, wh.Right)
		hashFloat(h, wh.Tangent)
		hashInt(h, int(wh.Interp))
	}
	hashInt(h, int(v.StartCap))
	hashInt(h, int(v.EndCap))
	hashInt(h, int(v.Join))
	hashFloat(h, v.MiterLimit)
	hashBool(h, v.Mirror)
	hashBool(h, v.ConstrainNormal)
	hashBool(h, v.RemoveInternal)
	hashBool(h, v.RemoveExternal)
}

const (
	// Number of pieces a curved segment is cut into before offsetting.
	strokePieces = 8
	// Accuracy of round joins and caps, in glyph units.
	strokeArcTolerance = 1e-3
)

// strokeStyle describes how offset sides are connected.
type strokeStyle struct {
	startCap   Cap
	endCap     Cap
	join       Join
	miterLimit float64
}

// strokeSpan is a skeleton segment with the stroke's extent at both of its
// ends.
type strokeSpan struct {
	seg     CubicBez
	left    [2]float64
	right   [2]float64
	tangent [2]float64
}

func isPoint(c CubicBez) bool {
	const epsilon = 1e-9
	return c.P1.Near(c.P0, epsilon) && c.P2.Near(c.P0, epsilon) && c.P3.Near(c.P0, epsilon)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// offset returns the span offset to side.
//
// Straight segments are offset exactly. Curved segments are cut into pieces
// whose control arms are shifted along the normal and scaled by the change
// in radius of curvature.
func (sp strokeSpan) offset(side Side) []CubicBez {
	sign, w := 1.0, sp.left
	if side == SideRight {
		sign, w = -1.0, sp.right
	}
	at := func(t float64) (Point, float64) {
		d := sign * lerp(w[0], w[1], t)
		tan := sp.seg.Tangent(t)
		shift := tan.Normal().Mul(d).Add(tan.Mul(lerp(sp.tangent[0], sp.tangent[1], t)))
		return sp.seg.Eval(t).Translate(shift), d
	}

	if sp.seg.IsLinear(linearTolerance) {
		p0, _ := at(0)
		p1, _ := at(1)
		return []CubicBez{Line{p0, p1}.Raise()}
	}
	out := make([]CubicBez, strokePieces)
	prev, d0 := at(0)
	for i := range out {
		t0 := float64(i) / strokePieces
		t1 := float64(i+1) / strokePieces
		next, d1 := at(t1)
		q := sp.seg.Subsegment(t0, t1)
		k0 := max(1-sp.seg.Curvature(t0)*d0, 0)
		k1 := max(1-sp.seg.Curvature(t1)*d1, 0)
		out[i] = CubicBez{
			prev,
			prev.Translate(q.P1.Sub(q.P0).Mul(k0)),
			next.Translate(q.P2.Sub(q.P3).Mul(k1)),
			next,
		}
		prev, d0 = next, d1
	}
	return out
}

// side offsets all spans to one side and joins them. For closed skeletons
// the result is a closed loop.
func (s strokeStyle) side(spans []strokeSpan, side Side, closed bool) []CubicBez {
	var chain []CubicBez
	for i, sp := range spans {
		pieces := sp.offset(side)
		if i > 0 {
			prev := spans[i-1].seg
			chain = append(chain, s.joinAt(sp.seg.P0, chain[len(chain)-1].P3, pieces[0].P0, prev.Tangent(1), sp.seg.Tangent(0), side)...)
		}
		chain = append(chain, pieces...)
	}
	if closed {
		last := spans[len(spans)-1].seg
		chain = append(chain, s.joinAt(spans[0].seg.P0, chain[len(chain)-1].P3, chain[0].P0, last.Tangent(1), spans[0].seg.Tangent(0), side)...)
	}
	return chain
}

// joinAt connects the offset point a, reached along tan0, to the offset
// point b, left along tan1, around the skeleton node. Joins are only drawn on
// the outer side of a turn; the inner side is connected by a line.
func (s strokeStyle) joinAt(node, a, b Point, tan0, tan1 Vec2, side Side) []CubicBez {
	if a == b {
		return nil
	}
	const epsilon = 1e-9
	cross := tan0.Cross(tan1)
	dot := tan0.Dot(tan1)
	var outer bool
	switch {
	case math.Abs(cross) <= epsilon:
		// A cusp turns back on both sides; a straight continuation only
		// steps between widths.
		outer = dot < 0
	case side == SideLeft:
		outer = cross < 0
	default:
		outer = cross > 0
	}
	if !outer {
		return []CubicBez{Line{a, b}.Raise()}
	}

	switch s.join {
	case MiterJoin:
		m, ok := Line{a, a.Translate(tan0)}.CrossingPoint(Line{b, b.Translate(tan1)})
		limit := s.miterLimit * max(a.Distance(node), b.Distance(node))
		if ok && m.Sub(a).Dot(tan0) >= 0 && m.Distance(node) <= limit {
			return []CubicBez{Line{a, m}.Raise(), Line{m, b}.Raise()}
		}
	case RoundJoin:
		sweep := math.Remainder(b.Sub(node).Angle()-a.Sub(node).Angle(), 2*math.Pi)
		if side == SideLeft && sweep > 0 {
			sweep -= 2 * math.Pi
		} else if side == SideRight && sweep < 0 {
			sweep += 2 * math.Pi
		}
		return arcTo(node, a, b, sweep, strokeArcTolerance)
	}
	return []CubicBez{Line{a, b}.Raise()}
}

// capAt closes the stroke around an end node, from a to b, where a lies to
// the left of the outward direction tan.
func capAt(c Cap, node, a, b Point, tan Vec2) []CubicBez {
	if a == b {
		return nil
	}
	switch c {
	case SquareCap:
		ext := tan.Mul((a.Distance(node) + b.Distance(node)) / 2)
		a1, b1 := a.Translate(ext), b.Translate(ext)
		return []CubicBez{Line{a, a1}.Raise(), Line{a1, b1}.Raise(), Line{b1, b}.Raise()}
	case RoundCap:
		return arcTo(node, a, b, -math.Pi, strokeArcTolerance)
	default:
		return []CubicBez{Line{a, b}.Raise()}
	}
}

func reversed(segs []CubicBez) []CubicBez {
	out := make([]CubicBez, len(segs))
	for i, seg := range segs {
		out[len(segs)-1-i] = seg.Reverse()
	}
	return out
}

// strokeOpen outlines an open skeleton with a single closed contour: the
// left side forwards, the end cap, the right side backwards and the start
// cap.
func (s strokeStyle) strokeOpen(spans []strokeSpan) Contour {
	left := s.side(spans, SideLeft, false)
	right := s.side(spans, SideRight, false)
	first, last := spans[0].seg, spans[len(spans)-1].seg

	segs := slices.Clone(left)
	segs = append(segs, capAt(s.endCap, last.P3, left[len(left)-1].P3, right[len(right)-1].P3, last.Tangent(1))...)
	segs = append(segs, reversed(right)...)
	segs = append(segs, capAt(s.startCap, first.P0, right[0].P0, left[0].P0, first.Tangent(0).Negate())...)
	return Piecewise{Segs: segs, Closed: true}.Contour()
}

// strokeClosed outlines a closed skeleton with two loops. The right loop is
// reversed so that the two loops have opposite orientations.
func (s strokeStyle) strokeClosed(spans []strokeSpan) (left, right Contour) {
	left = Piecewise{Segs: s.side(spans, SideLeft, true), Closed: true}.Contour()
	right = Piecewise{Segs: reversed(s.side(spans, SideRight, true)), Closed: true}.Contour()
	return left, right
}
