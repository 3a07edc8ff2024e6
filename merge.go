package glyph

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Selection identifies a node in an outline.
type Selection struct {
	Contour int
	Point   int
}

// MergeResult is the outcome of [MergeContours].
type MergeResult struct {
	Outline Outline
	// Selection is the node at which the contours were joined.
	Selection Selection
	// DroppedOperation is set if the contours carried operations that
	// couldn't be combined. The merged contour has no operation.
	DroppedOperation bool
}

// ContourHandler joins the node lists of contours of one representation.
type ContourHandler interface {
	// Join returns the nodes of end followed by the nodes of start, sharing
	// the node at which they meet.
	Join(end, start Contour) []Node
	// Close returns the nodes of c with its last node folded into its
	// first.
	Close(c Contour) []Node
}

// HandlerFor returns the handler for contours of representation r.
func HandlerFor(r Representation) ContourHandler {
	if r == QuadraticRepresentation {
		return quadHandler{}
	}
	return cubicHandler{}
}

type cubicHandler struct{}

func (cubicHandler) Join(end, start Contour) []Node {
	nodes := slices.Grow(slices.Clone(end.Nodes), len(start.Nodes)-1)
	nodes[len(nodes)-1].A = start.Nodes[0].A
	return append(nodes, start.Nodes[1:]...)
}

func (cubicHandler) Close(c Contour) []Node {
	last := c.Nodes[len(c.Nodes)-1]
	nodes := slices.Clone(c.Nodes[:len(c.Nodes)-1])
	nodes[0].B = last.B
	nodes[0].Type = last.Type
	return nodes
}

type quadHandler struct{}

// smoothTolerance is the sine of the largest angle at which a quadratic join
// is still considered smooth.
const smoothTolerance = 0.05

func (quadHandler) Join(end, start Contour) []Node {
	nodes := cubicHandler{}.Join(end, start)
	k := len(end.Nodes) - 1
	join := nodes[k]
	if join.A.Set && join.B.Set && k+1 < len(nodes) {
		in := join.Pt.Sub(join.B.Pos)
		out := join.A.Pos.Sub(join.Pt)
		if in.Hypot() > 0 && out.Hypot() > 0 {
			sin := in.Cross(out) / (in.Hypot() * out.Hypot())
			if in.Dot(out) > 0 && math.Abs(sin) < smoothTolerance {
				// Keep the join G1 by aligning the outgoing control with the
				// incoming one.
				join.A.Pos = join.Pt.Translate(in.Normalize().Mul(out.Hypot()))
				nodes[k] = join
			}
		}
	}
	syncQuadControls(nodes, false)
	return nodes
}

func (quadHandler) Close(c Contour) []Node {
	nodes := cubicHandler{}.Close(c)
	syncQuadControls(nodes, true)
	return nodes
}

// MergeContours attaches the end of contour end to the start of contour
// start. If both are the same contour, it is closed instead.
//
// The merged contour replaces end, and start is removed from the outline.
// Operations are carried over so that they stay aligned with the merged
// nodes. If the two contours carry operations of different kinds, the
// geometry is merged without an operation and the result reports
// DroppedOperation.
func MergeContours(o Outline, start, end int) (MergeResult, error) {
	if start < 0 || start >= len(o) || end < 0 || end >= len(o) {
		return MergeResult{}, fmt.Errorf("merging contours %d and %d of %d: %w", start, end, len(o), ErrContourIndex)
	}
	if start == end {
		return closeContour(o, start)
	}

	cs, ce := o[start], o[end]
	if cs.Closed || ce.Closed {
		return MergeResult{}, ErrContourClosed
	}
	if cs.Repr != ce.Repr {
		return MergeResult{}, ErrRepresentationMismatch
	}
	if len(cs.Nodes) == 0 || len(ce.Nodes) == 0 {
		return MergeResult{}, ErrDegenerateSkeleton
	}

	// The first node of start is replaced by the last node of end.
	rest := Contour{
		Nodes: cs.Nodes[1:],
		Repr:  cs.Repr,
		Op:    Sub(cs, 1, len(cs.Nodes)),
	}
	var res MergeResult
	var op Operation
	switch {
	case ce.Op != nil:
		var err error
		op, err = Append(ce, rest)
		if errors.Is(err, ErrIncompatibleOperations) {
			Logger().Warn("dropping contour operations while merging",
				"start", start, "end", end, "err", err)
			op = nil
			res.DroppedOperation = true
		} else if err != nil {
			return MergeResult{}, err
		}
	case cs.Op != nil:
		// Seed start's operation with neutral entries for end's nodes.
		cur := rest
		for i := len(ce.Nodes) - 1; i >= 0; i-- {
			op = Insert(cur, 0)
			cur = Contour{
				Nodes: slices.Insert(slices.Clone(cur.Nodes), 0, ce.Nodes[i]),
				Repr:  cur.Repr,
				Op:    op,
			}
		}
	}

	merged := Contour{
		Nodes: HandlerFor(ce.Repr).Join(ce, cs),
		Repr:  ce.Repr,
		Op:    op,
	}
	out := make(Outline, 0, len(o)-1)
	for i, c := range o {
		switch i {
		case start:
		case end:
			res.Selection = Selection{Contour: len(out), Point: len(ce.Nodes) - 1}
			out = append(out, merged)
		default:
			out = append(out, c)
		}
	}
	res.Outline = out
	return res, nil
}

func closeContour(o Outline, idx int) (MergeResult, error) {
	c := o[idx]
	if c.Closed {
		return MergeResult{}, ErrContourClosed
	}
	if len(c.Nodes) < 3 {
		return MergeResult{}, ErrDegenerateSkeleton
	}
	closed := Contour{
		Nodes:  HandlerFor(c.Repr).Close(c),
		Closed: true,
		Repr:   c.Repr,
		Op:     Sub(c, 0, len(c.Nodes)-1),
	}
	out := slices.Clone(o)
	out[idx] = closed
	return MergeResult{
		Outline:   out,
		Selection: Selection{Contour: idx, Point: 0},
	}, nil
}
