package glyph

import (
	"slices"
)

// Handle is an off-curve control point attached to a [Node]. The zero value
// is a handle colocated with its node, which contributes no curvature.
type Handle struct {
	Pos Point
	Set bool
}

// HandleAt returns a handle at the absolute position pt.
func HandleAt(pt Point) Handle {
	return Handle{Pos: pt, Set: true}
}

// Resolve returns the absolute position of the handle, given the position of
// the node it belongs to.
func (h Handle) Resolve(node Point) Point {
	if !h.Set {
		return node
	}
	return h.Pos
}

func (h Handle) transform(aff Affine) Handle {
	if !h.Set {
		return h
	}
	return Handle{Pos: h.Pos.Transform(aff), Set: true}
}

// PointType tags a node with the drawing semantics it had in the source
// glyph.
type PointType int

const (
	// The first node of an open contour.
	PointMove PointType = iota
	// A node reached by a straight segment.
	PointLine
	// A node reached by a cubic segment.
	PointCurve
	// A node reached by a quadratic segment.
	PointQCurve
)

func (t PointType) String() string {
	switch t {
	case PointMove:
		return "move"
	case PointLine:
		return "line"
	case PointCurve:
		return "curve"
	case PointQCurve:
		return "qcurve"
	default:
		return "unknown"
	}
}

// Node is an on-curve point of a contour.
//
// A is the outgoing handle, towards the next node. B is the incoming handle,
// from the previous node. The cubic segment from node i to node i+1 is
// (N[i].Pt, N[i].A, N[i+1].B, N[i+1].Pt).
type Node struct {
	Pt   Point
	A    Handle
	B    Handle
	Type PointType
	Name string
}

func (n Node) transform(aff Affine) Node {
	n.Pt = n.Pt.Transform(aff)
	n.A = n.A.transform(aff)
	n.B = n.B.transform(aff)
	return n
}

// Representation is the curve type a contour's segments are made of. It is
// fixed for a contour's lifetime.
type Representation int

const (
	CubicRepresentation Representation = iota
	// Quadratic segments use a single control point, stored in the outgoing
	// handle of the segment's first node and mirrored in the incoming handle
	// of its second node.
	QuadraticRepresentation
)

func (r Representation) String() string {
	switch r {
	case CubicRepresentation:
		return "cubic"
	case QuadraticRepresentation:
		return "quadratic"
	default:
		return "unknown"
	}
}

// Contour is an ordered, optionally closed sequence of nodes that may carry a
// contour operation. When Op is set, the nodes are the skeleton the operation
// is resolved against; see [Build].
//
// Contours are values. Functions in this package never modify the node slice
// of a contour they are given; they return new contours instead.
type Contour struct {
	Nodes  []Node
	Closed bool
	Repr   Representation
	// Op is the contour's operation, or nil. Operations are immutable; editing
	// functions replace them.
	Op Operation
}

// Len returns the number of nodes.
func (c Contour) Len() int {
	return len(c.Nodes)
}

// Clone returns a copy of c that doesn't share its node slice.
func (c Contour) Clone() Contour {
	c.Nodes = slices.Clone(c.Nodes)
	return c
}

// NumSegments returns the number of segments between nodes, including the
// closing segment of a closed contour.
func (c Contour) NumSegments() int {
	n := len(c.Nodes)
	if n < 2 {
		return 0
	}
	if c.Closed {
		return n
	}
	return n - 1
}

// Segment returns segment i as a cubic Bézier. Quadratic segments are raised,
// straight segments become uniform-speed cubics.
func (c Contour) Segment(i int) CubicBez {
	a := c.Nodes[i]
	b := c.Nodes[(i+1)%len(c.Nodes)]
	return segmentBetween(c.Repr, a, b)
}

func segmentBetween(repr Representation, a, b Node) CubicBez {
	switch repr {
	case QuadraticRepresentation:
		if !a.A.Set {
			return Line{a.Pt, b.Pt}.Raise()
		}
		return QuadBez{a.Pt, a.A.Pos, b.Pt}.Raise()
	default:
		if !a.A.Set && !b.B.Set {
			return Line{a.Pt, b.Pt}.Raise()
		}
		return CubicBez{a.Pt, a.A.Resolve(a.Pt), b.B.Resolve(b.Pt), b.Pt}
	}
}

// Start returns the position of the first node.
func (c Contour) Start() Point {
	return c.Nodes[0].Pt
}

// End returns the position of the last node, or of the first node for closed
// contours.
func (c Contour) End() Point {
	if c.Closed {
		return c.Nodes[0].Pt
	}
	return c.Nodes[len(c.Nodes)-1].Pt
}

// Transform returns c with every node and handle transformed by aff.
// The operation is kept unchanged.
func (c Contour) Transform(aff Affine) Contour {
	out := c
	out.Nodes = make([]Node, len(c.Nodes))
	for i, n := range c.Nodes {
		out.Nodes[i] = n.transform(aff)
	}
	return out
}

// Reverse returns c traversed in the opposite direction. Handles swap roles.
// The operation is dropped, as its per-node data would no longer line up.
func (c Contour) Reverse() Contour {
	out := c
	out.Op = nil
	out.Nodes = make([]Node, len(c.Nodes))
	for i, n := range c.Nodes {
		n.A, n.B = n.B, n.A
		out.Nodes[len(c.Nodes)-1-i] = n
	}
	if c.Repr == QuadraticRepresentation {
		// Control points live on the outgoing side; after swapping they are on
		// the incoming side of the same segment, which now starts at the
		// previous node.
		for i := range out.Nodes {
			j := (i + 1) % len(out.Nodes)
			if j == 0 && !out.Closed {
				out.Nodes[i].A = Handle{}
				continue
			}
			out.Nodes[i].A = out.Nodes[j].B
		}
	}
	return out
}

// BoundingBox returns the bounding box of the contour's segments. A contour
// with a single node has a zero-area bounding box.
func (c Contour) BoundingBox() Rect {
	if len(c.Nodes) == 0 {
		return Rect{}
	}
	bbox := NewRectFromPoints(c.Nodes[0].Pt, c.Nodes[0].Pt)
	for i := range c.NumSegments() {
		bbox = bbox.Union(c.Segment(i).BoundingBox())
	}
	return bbox
}

// SignedArea returns the area enclosed by the contour, treating open contours
// as closed. It is positive for anti-clockwise contours in glyph space.
func (c Contour) SignedArea() float64 {
	var area float64
	for i := range c.NumSegments() {
		area += c.Segment(i).SignedArea()
	}
	if !c.Closed && len(c.Nodes) > 1 {
		area += Line{c.End(), c.Start()}.SignedArea()
	}
	return area
}

// Outline is an ordered sequence of contours. Order is draw order.
type Outline []Contour

// Clone returns a deep copy of o.
func (o Outline) Clone() Outline {
	if o == nil {
		return nil
	}
	out := make(Outline, len(o))
	for i, c := range o {
		out[i] = c.Clone()
	}
	return out
}

// Transform returns o with every contour transformed by aff.
func (o Outline) Transform(aff Affine) Outline {
	out := make(Outline, len(o))
	for i, c := range o {
		out[i] = c.Transform(aff)
	}
	return out
}

// BoundingBox returns the bounding box of all contours in o.
func (o Outline) BoundingBox() Rect {
	var bbox Rect
	first := true
	for _, c := range o {
		if len(c.Nodes) == 0 {
			continue
		}
		if first {
			bbox = c.BoundingBox()
			first = false
		} else {
			bbox = bbox.Union(c.BoundingBox())
		}
	}
	return bbox
}

// NumNodes returns the total number of nodes in o.
func (o Outline) NumNodes() int {
	n := 0
	for _, c := range o {
		n += len(c.Nodes)
	}
	return n
}
