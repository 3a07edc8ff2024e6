package glyph

import (
	"fmt"
	"hash/maphash"
	"math"
	"slices"
)

// CopyMode selects how many copies of a pattern are stamped along a skeleton.
type CopyMode int

const (
	// As many copies as fit, one every Spacing units.
	RepeatedCopies CopyMode = iota
	// A single copy.
	SingleCopy
	// Exactly Count copies, evenly distributed.
	FixedCopies
)

func (m CopyMode) String() string {
	switch m {
	case RepeatedCopies:
		return "repeated"
	case SingleCopy:
		return "single"
	case FixedCopies:
		return "fixed"
	default:
		return "unknown"
	}
}

// DefaultFlattenTolerance is the accuracy, in glyph units, with which
// patterns are flattened when simplified.
const DefaultFlattenTolerance = 0.05

// PatternAlongPath stamps copies of a pattern outline along its skeleton.
//
// Patterns are placed in a frame whose x axis runs along the skeleton and
// whose y axis is the skeleton's left normal. The pattern's vertical center
// lies on the skeleton.
type PatternAlongPath struct {
	// Pattern is a snapshot of the stamped outline. It must not be modified
	// after the operation has been attached.
	Pattern Outline
	Copies  CopyMode
	// Count is the number of copies for FixedCopies.
	Count int
	// Subdivisions is 0 for rigid copies. Otherwise each pattern segment is
	// halved Subdivisions times and every node is placed on the skeleton
	// individually, bending the pattern. At most MaxSubdivisions.
	Subdivisions int
	// IsVertical rotates the pattern by 90° before stamping.
	IsVertical bool
	// Stretch scales copies along the skeleton so that they fill it.
	Stretch bool
	// Spacing is the distance between the starts of consecutive copies for
	// RepeatedCopies.
	Spacing float64
	// Simplify merges overlapping copies into a single outline.
	Simplify      bool
	NormalOffset  float64
	TangentOffset float64
	// PatternScale scales the pattern before stamping. A zero component is
	// treated as 1.
	PatternScale Vec2
	// CenterPattern centers each copy on its slot instead of starting it
	// there.
	CenterPattern bool
	// FlattenTolerance is used by Simplify. Zero means
	// DefaultFlattenTolerance.
	FlattenTolerance float64
}

var _ Operation = PatternAlongPath{}

func (PatternAlongPath) Kind() OperationKind { return PatternAlongPathKind }

func (p PatternAlongPath) scale() Vec2 {
	s := p.PatternScale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

// maxCopies bounds the number of copies a single skeleton can carry.
const maxCopies = 100_000

// MaxSubdivisions is the largest supported value of
// [PatternAlongPath.Subdivisions]. Every subdivision doubles the number of
// pattern nodes.
const MaxSubdivisions = 10

// copies returns the arc length positions of all copies and the length of
// the slot each copy occupies.
func (p PatternAlongPath) copies(l float64) ([]float64, float64, error) {
	var n int
	var step float64
	switch p.Copies {
	case SingleCopy:
		n, step = 1, l
	case FixedCopies:
		if p.Count <= 0 || p.Count > maxCopies {
			return nil, 0, fmt.Errorf("%d copies: %w", p.Count, ErrInvalidSpacing)
		}
		n, step = p.Count, l/float64(p.Count)
	default:
		if !(p.Spacing > 0) || math.IsInf(p.Spacing, 0) {
			return nil, 0, fmt.Errorf("spacing %g: %w", p.Spacing, ErrInvalidSpacing)
		}
		// Exact multiples of the spacing mustn't lose a copy to rounding in
		// the arc length.
		f := math.Floor(l / p.Spacing * (1 + 1e-9))
		if !(f <= maxCopies) {
			return nil, 0, fmt.Errorf("spacing %g yields too many copies: %w", p.Spacing, ErrInvalidSpacing)
		}
		n = int(f)
		step = p.Spacing
		if p.Stretch && n > 0 {
			step = l / float64(n)
		}
	}
	pos := make([]float64, n)
	for i := range pos {
		pos[i] = float64(i) * step
		if p.CenterPattern {
			pos[i] += step / 2
		}
	}
	return pos, step, nil
}

// local returns the transform from pattern space into the local space of a
// copy: x is the arc length offset from the copy's position, y the distance
// along the normal.
func (p PatternAlongPath) local(bbox Rect, step float64) Affine {
	s := p.scale()
	if p.Stretch && bbox.Width() > 0 {
		s.X = step / bbox.Width()
	}
	anchorX := bbox.X0
	if p.CenterPattern {
		anchorX = bbox.Center().X
	}
	return Translate(Vec(-anchorX, -bbox.Center().Y)).
		ThenScale(s.X, s.Y).
		ThenTranslate(Vec(p.TangentOffset, p.NormalOffset))
}

func (p PatternAlongPath) build(c Contour) (Outline, error) {
	// Operations nested in the pattern are resolved first.
	pattern := p.Pattern.Build()
	if p.IsVertical {
		pattern = pattern.Transform(Rotate(-math.Pi / 2))
	}
	if pattern.NumNodes() == 0 {
		return nil, ErrEmptyPattern
	}
	if p.Subdivisions > MaxSubdivisions {
		return nil, fmt.Errorf("%d subdivisions: %w", p.Subdivisions, ErrInvalidSubdivisions)
	}
	bbox := pattern.BoundingBox()
	if bbox.Width() == 0 && bbox.Height() == 0 {
		return nil, ErrEmptyPattern
	}
	if len(c.Nodes) < 2 {
		return nil, ErrDegenerateSkeleton
	}
	m := NewPiecewise(c).measure(DefaultAccuracy)
	l := m.length()
	if !(l > 0) || math.IsInf(l, 0) {
		return nil, ErrDegenerateSkeleton
	}
	pos, step, err := p.copies(l)
	if err != nil {
		return nil, err
	}

	local := p.local(bbox, step)
	stamps := make([]Outline, len(pos))
	for i, s := range pos {
		placed := pattern.Transform(local)
		if p.Subdivisions > 0 {
			stamps[i] = p.bend(placed, m, s, c.Closed)
		} else {
			pt, tan := m.frame(s)
			stamps[i] = placed.Transform(Frame(pt, tan))
		}
	}

	if p.Simplify && len(stamps) > 1 {
		tol := p.FlattenTolerance
		if tol <= 0 {
			tol = DefaultFlattenTolerance
		}
		return unionOutlines(stamps, tol), nil
	}
	var out Outline
	for _, st := range stamps {
		out = append(out, st...)
	}
	return out, nil
}

// bend maps every node and handle of the locally placed pattern through the
// skeleton's frame at its own arc length.
func (p PatternAlongPath) bend(o Outline, m *pathMeasure, s0 float64, closed bool) Outline {
	l := m.length()
	place := func(pt Point) Point {
		s := s0 + pt.X
		if closed {
			s = math.Mod(s, l)
			if s < 0 {
				s += l
			}
		}
		origin, tan := m.frame(s)
		return origin.Translate(tan.Normal().Mul(pt.Y))
	}
	out := make(Outline, len(o))
	for i, c := range o {
		c = subdivideContour(c, p.Subdivisions)
		for j, n := range c.Nodes {
			if n.A.Set {
				n.A.Pos = place(n.A.Pos)
			}
			if n.B.Set {
				n.B.Pos = place(n.B.Pos)
			}
			n.Pt = place(n.Pt)
			c.Nodes[j] = n
		}
		out[i] = c
	}
	return out
}

// subdivideContour halves every segment of c n times.
func subdivideContour(c Contour, n int) Contour {
	for range n {
		k := len(c.Nodes)
		segs := c.NumSegments()
		if segs == 0 {
			return c
		}
		// Subdividing a segment updates the handles of both of its nodes.
		nodes := slices.Clone(c.Nodes)
		out := make([]Node, 0, 2*k)
		for i := range segs {
			j := (i + 1) % k
			var mid Node
			if c.Repr == QuadraticRepresentation {
				nodes[i], mid, nodes[j] = SubdivideQuadSegment(nodes[i], nodes[j], 0.5)
			} else {
				nodes[i], mid, nodes[j] = SubdivideSegment(nodes[i], nodes[j], 0.5)
			}
			out = append(out, nodes[i], mid)
		}
		if c.Closed {
			out[0].B = nodes[0].B
		} else {
			out = append(out, nodes[k-1])
		}
		c.Nodes = out
	}
	return c
}

func (p PatternAlongPath) sub(c Contour, begin, end int) Operation { return p }

func (p PatternAlongPath) append(c, other Contour) (Operation, error) { return p, nil }

func (p PatternAlongPath) insert(c Contour, idx int) Operation { return p }

func (p PatternAlongPath) hash(h *maphash.Hash) {
	hashInt(h, int(p.Kind()))
	hashOutline(h, p.Pattern)
	hashInt(h, int(p.Copies))
	hashInt(h, p.Count)
	hashInt(h, p.Subdivisions)
	hashBool(h, p.IsVertical)
	hashBool(h, p.Stretch)
	hashFloat(h, p.Spacing)
	hashBool(h, p.Simplify)
	hashFloat(h, p.NormalOffset)
	hashFloat(h, p.TangentOffset)
	hashFloat(h, p.PatternScale.X)
	hashFloat(h, p.PatternScale.Y)
	hashBool(h, p.CenterPattern)
	hashFloat(h, p.FlattenTolerance)
}
