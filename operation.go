package glyph

import (
	"fmt"
	"hash/maphash"
)

// OperationKind identifies the variant of an [Operation].
type OperationKind int

const (
	PatternAlongPathKind OperationKind = iota + 1
	VariableWidthStrokeKind
	DashAlongPathKind
)

func (k OperationKind) String() string {
	switch k {
	case PatternAlongPathKind:
		return "pattern along path"
	case VariableWidthStrokeKind:
		return "variable width stroke"
	case DashAlongPathKind:
		return "dash along path"
	default:
		return fmt.Sprintf("OperationKind(%d)", int(k))
	}
}

// Operation is a parametric recipe attached to a contour. It is resolved into
// drawable geometry by [Build].
//
// The set of operations is closed: it is implemented by [PatternAlongPath],
// [VariableWidthStroke] and [DashAlongPath]. Per-node data of an operation is
// index-aligned with the nodes of the contour carrying it. Operations never
// reference that contour; it is passed to every call instead.
type Operation interface {
	Kind() OperationKind

	// build resolves the operation against skeleton c.
	build(c Contour) (Outline, error)
	// sub restricts the operation to nodes [begin, end) of c. The range has
	// been clamped.
	sub(c Contour, begin, end int) Operation
	// append combines the operation of c with that of other, which is
	// either nil or of the same kind, for the skeleton c.Nodes followed by
	// other.Nodes.
	append(c, other Contour) (Operation, error)
	// insert adds a neutral entry for a node about to be inserted at idx
	// into c. idx has been clamped to [0, len(c.Nodes)].
	insert(c Contour, idx int) Operation
	// hash writes the operation's parameters to h.
	hash(h *maphash.Hash)
}

func validKind(k OperationKind) bool {
	switch k {
	case PatternAlongPathKind, VariableWidthStrokeKind, DashAlongPathKind:
		return true
	default:
		return false
	}
}

// skeleton returns c without its operation.
func skeleton(c Contour) Contour {
	c.Op = nil
	return c
}

// Build resolves c into drawable geometry.
//
// A contour without an operation builds to itself. Build never fails: if the
// operation can't be resolved, the failure is logged and the skeleton is
// returned without its operation. Use [TryBuild] to observe the failure.
func Build(c Contour) Outline {
	out, err := TryBuild(c)
	if err != nil {
		Logger().Warn("contour operation failed to build, showing skeleton",
			"kind", c.Op.Kind(), "err", err)
	}
	return out
}

// TryBuild is like [Build] but also returns the reason an operation couldn't
// be resolved. The returned outline is usable either way.
func TryBuild(c Contour) (Outline, error) {
	if c.Op == nil {
		return Outline{c}, nil
	}
	if !validKind(c.Op.Kind()) {
		return Outline{skeleton(c)}, fmt.Errorf("unknown contour operation %s", c.Op.Kind())
	}
	out, err := c.Op.build(c)
	if err != nil {
		return Outline{skeleton(c)}, fmt.Errorf("building %s: %w", c.Op.Kind(), err)
	}
	return out, nil
}

// Build resolves every contour of o and concatenates the results, producing
// operation-free geometry for export.
func (o Outline) Build() Outline {
	var out Outline
	for _, c := range o {
		out = append(out, Build(c)...)
	}
	return out
}

func clampRange(n, begin, end int) (int, int) {
	b, e := min(max(begin, 0), n), min(max(end, 0), n)
	if e < b {
		e = b
	}
	if b != begin || e != end {
		Logger().Debug("clamped operation range", "begin", begin, "end", end, "len", n)
	}
	return b, e
}

// Sub returns c's operation restricted to nodes [begin, end), for use with
// the skeleton c.Nodes[begin:end]. It returns nil if c has no operation.
//
// Out-of-range indices are clamped to the skeleton.
func Sub(c Contour, begin, end int) Operation {
	if c.Op == nil {
		return nil
	}
	begin, end = clampRange(len(c.Nodes), begin, end)
	return c.Op.sub(c, begin, end)
}

// Append returns the operation for the skeleton c.Nodes followed by
// other.Nodes. It returns nil, nil if c has no operation.
//
// If other carries an operation of the same kind, their data is
// concatenated. If other has none, c's data is extended with neutral values.
// Operations of different kinds can't be combined and yield
// [ErrIncompatibleOperations].
func Append(c, other Contour) (Operation, error) {
	if c.Op == nil {
		return nil, nil
	}
	if other.Op != nil && other.Op.Kind() != c.Op.Kind() {
		return nil, fmt.Errorf("appending %s to %s: %w", other.Op.Kind(), c.Op.Kind(), ErrIncompatibleOperations)
	}
	return c.Op.append(c, other)
}

// Insert returns c's operation with a neutral entry for a node inserted at
// idx, where c is the skeleton before the insertion. It returns nil if c has
// no operation. idx is clamped to [0, len(c.Nodes)].
func Insert(c Contour, idx int) Operation {
	if c.Op == nil {
		return nil
	}
	idx, _ = clampRange(len(c.Nodes), idx, idx)
	return c.Op.insert(c, idx)
}

// Remove returns c's operation with the entry for node idx removed. It
// returns nil if c has no operation.
func Remove(c Contour, idx int) Operation {
	if c.Op == nil {
		return nil
	}
	n := len(c.Nodes)
	if n == 0 {
		return c.Op
	}
	idx = min(max(idx, 0), n-1)
	left := Contour{Nodes: c.Nodes[:idx], Repr: c.Repr, Op: Sub(c, 0, idx)}
	right := Contour{Nodes: c.Nodes[idx+1:], Repr: c.Repr, Op: Sub(c, idx+1, n)}
	op, err := Append(left, right)
	if err != nil {
		Logger().Warn("dropping contour operation while removing a node",
			"kind", c.Op.Kind(), "idx", idx, "err", err)
		return nil
	}
	return op
}
