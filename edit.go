package glyph

import (
	"fmt"
	"slices"
)

// SubdivideSegment splits the cubic segment from a to b at t. It returns a
// with its new outgoing handle, the new node, and b with its new incoming
// handle. Straight segments stay straight.
func SubdivideSegment(a, b Node, t float64) (Node, Node, Node) {
	if !a.A.Set && !b.B.Set {
		mid := Node{Pt: Line{a.Pt, b.Pt}.Eval(t), Type: PointLine}
		return a, mid, b
	}
	seg := CubicBez{a.Pt, a.A.Resolve(a.Pt), b.B.Resolve(b.Pt), b.Pt}
	l, r := seg.SubdivideAt(t)
	a.A = HandleAt(l.P1)
	mid := Node{
		Pt:   l.P3,
		B:    HandleAt(l.P2),
		A:    HandleAt(r.P1),
		Type: PointCurve,
	}
	b.B = HandleAt(r.P2)
	return a, mid, b
}

// SubdivideQuadSegment is like [SubdivideSegment] for quadratic segments,
// whose control point is stored in a.A.
func SubdivideQuadSegment(a, b Node, t float64) (Node, Node, Node) {
	if !a.A.Set {
		mid := Node{Pt: Line{a.Pt, b.Pt}.Eval(t), Type: PointLine}
		return a, mid, b
	}
	l, r := QuadBez{a.Pt, a.A.Pos, b.Pt}.SubdivideAt(t)
	a.A = HandleAt(l.P1)
	mid := Node{
		Pt:   l.P2,
		B:    HandleAt(l.P1),
		A:    HandleAt(r.P1),
		Type: PointQCurve,
	}
	b.B = HandleAt(r.P1)
	return a, mid, b
}

func subdivideNodes(repr Representation, a, b Node, t float64) (Node, Node, Node) {
	if repr == QuadraticRepresentation {
		return SubdivideQuadSegment(a, b, t)
	}
	return SubdivideSegment(a, b, t)
}

// InsertPoint splits segment seg at t and returns the resulting contour and
// the index of the new node. The contour's operation gets a neutral entry for
// the new node.
func (c Contour) InsertPoint(seg int, t float64) (Contour, int, error) {
	if seg < 0 || seg >= c.NumSegments() {
		return c, 0, fmt.Errorf("inserting point into segment %d of %d: %w", seg, c.NumSegments(), ErrSegmentIndex)
	}
	t = min(max(t, 0), 1)
	i, j := seg, (seg+1)%len(c.Nodes)
	nodes := slices.Clone(c.Nodes)
	var mid Node
	nodes[i], mid, nodes[j] = subdivideNodes(c.Repr, nodes[i], nodes[j], t)
	out := c
	out.Op = Insert(c, i+1)
	out.Nodes = slices.Insert(nodes, i+1, mid)
	return out, i + 1, nil
}

// Extend adds n to the start or the end of the open contour c, as drawing
// with the pen does. The contour's operation gets a neutral entry for it.
func (c Contour) Extend(n Node, atStart bool) (Contour, error) {
	if c.Closed {
		return c, ErrContourClosed
	}
	out := c
	if atStart {
		out.Op = Insert(c, 0)
		next := n
		next.Type = PointMove
		nodes := slices.Insert(slices.Clone(c.Nodes), 0, next)
		if len(nodes) > 1 && nodes[1].Type == PointMove {
			nodes[1].Type = segmentType(c.Repr, nodes[0], nodes[1])
		}
		if c.Repr == QuadraticRepresentation {
			syncQuadControls(nodes, false)
		}
		out.Nodes = nodes
		return out, nil
	}
	out.Op = Insert(c, len(c.Nodes))
	if len(c.Nodes) == 0 {
		n.Type = PointMove
	} else {
		n.Type = segmentType(c.Repr, c.Nodes[len(c.Nodes)-1], n)
	}
	nodes := append(slices.Clone(c.Nodes), n)
	if c.Repr == QuadraticRepresentation {
		syncQuadControls(nodes, false)
	}
	out.Nodes = nodes
	return out, nil
}

// segmentType returns the point type of b when it is reached from a.
func segmentType(repr Representation, a, b Node) PointType {
	switch {
	case repr == QuadraticRepresentation && a.A.Set:
		return PointQCurve
	case repr == CubicRepresentation && (a.A.Set || b.B.Set):
		return PointCurve
	default:
		return PointLine
	}
}

// DeletePoint removes node idx from c. The neighbouring nodes are connected
// directly and the operation entry for the node is removed.
func (c Contour) DeletePoint(idx int) (Contour, error) {
	if idx < 0 || idx >= len(c.Nodes) {
		return c, fmt.Errorf("deleting point %d of %d: %w", idx, len(c.Nodes), ErrNodeIndex)
	}
	out := c
	out.Op = Remove(c, idx)
	nodes := slices.Delete(slices.Clone(c.Nodes), idx, idx+1)
	if len(nodes) > 0 && !c.Closed {
		nodes[0].Type = PointMove
		nodes[0].B = Handle{}
		nodes[len(nodes)-1].A = Handle{}
	}
	if c.Repr == QuadraticRepresentation {
		syncQuadControls(nodes, c.Closed)
	}
	out.Nodes = nodes
	return out, nil
}

// Split cuts the open contour c at node idx into two contours that both
// contain the node. Operations are split along with the nodes.
func (c Contour) Split(idx int) (Contour, Contour, error) {
	if c.Closed {
		return c, Contour{}, ErrContourClosed
	}
	if idx <= 0 || idx >= len(c.Nodes)-1 {
		return c, Contour{}, fmt.Errorf("splitting at point %d of %d: %w", idx, len(c.Nodes), ErrNodeIndex)
	}
	n := len(c.Nodes)
	first := Contour{
		Nodes: slices.Clone(c.Nodes[:idx+1]),
		Repr:  c.Repr,
		Op:    Sub(c, 0, idx+1),
	}
	first.Nodes[idx].A = Handle{}
	second := Contour{
		Nodes: slices.Clone(c.Nodes[idx:]),
		Repr:  c.Repr,
		Op:    Sub(c, idx, n),
	}
	second.Nodes[0].B = Handle{}
	second.Nodes[0].Type = PointMove
	return first, second, nil
}

// syncQuadControls mirrors the control point of every quadratic segment,
// stored in the outgoing handle of its first node, into the incoming handle
// of its second node.
func syncQuadControls(nodes []Node, closed bool) {
	for i := range nodes {
		j := i + 1
		if j == len(nodes) {
			if !closed {
				break
			}
			j = 0
		}
		nodes[j].B = nodes[i].A
	}
}
