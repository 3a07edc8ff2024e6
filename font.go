package glyph

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrGlyphNotFound is returned when a font has no glyph for a rune.
var ErrGlyphNotFound = errors.New("glyph: font has no glyph for rune")

// FontLoader extracts glyph outlines from a font, for use as patterns. It
// reuses a buffer between calls and is not safe for concurrent use.
type FontLoader struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

// NewFontLoader returns a loader for f.
func NewFontLoader(f *sfnt.Font) *FontLoader {
	return &FontLoader{font: f}
}

// Rune returns the outline of the glyph that f maps r to.
func (l *FontLoader) Rune(r rune) (Outline, error) {
	gid, err := l.font.GlyphIndex(&l.buf, r)
	if err != nil {
		return nil, err
	}
	if gid == 0 {
		return nil, fmt.Errorf("%q: %w", r, ErrGlyphNotFound)
	}
	return l.Glyph(gid)
}

// Glyph returns the outline of glyph gid in font units, with y pointing up.
// TrueType glyphs produce quadratic contours, CFF glyphs cubic ones.
func (l *FontLoader) Glyph(gid sfnt.GlyphIndex) (Outline, error) {
	// Loading at one pixel per font unit yields coordinates in font units.
	ppem := fixed.I(int(l.font.UnitsPerEm()))
	segs, err := l.font.LoadGlyph(&l.buf, gid, ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("loading glyph %d: %w", gid, err)
	}
	return outlineFromSegments(segs), nil
}

// GlyphOutline is a convenience wrapper around [FontLoader.Rune].
func GlyphOutline(f *sfnt.Font, r rune) (Outline, error) {
	return NewFontLoader(f).Rune(r)
}

func fixedToPoint(p fixed.Point26_6) Point {
	// sfnt's y axis points down.
	return Pt(float64(p.X)/64, -float64(p.Y)/64)
}

func outlineFromSegments(segs sfnt.Segments) Outline {
	repr := QuadraticRepresentation
	for _, seg := range segs {
		if seg.Op == sfnt.SegmentOpCubeTo {
			repr = CubicRepresentation
			break
		}
	}

	var out Outline
	var cur *Contour
	finish := func() {
		if cur != nil && len(cur.Nodes) > 0 {
			out = append(out, closeLoop(*cur))
		}
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			finish()
			cur = &Contour{Repr: repr, Nodes: []Node{{Pt: fixedToPoint(seg.Args[0]), Type: PointMove}}}
		case sfnt.SegmentOpLineTo:
			cur.Nodes = append(cur.Nodes, Node{Pt: fixedToPoint(seg.Args[0]), Type: PointLine})
		case sfnt.SegmentOpQuadTo:
			ctrl, pt := fixedToPoint(seg.Args[0]), fixedToPoint(seg.Args[1])
			prev := &cur.Nodes[len(cur.Nodes)-1]
			if repr == QuadraticRepresentation {
				prev.A = HandleAt(ctrl)
				cur.Nodes = append(cur.Nodes, Node{Pt: pt, B: HandleAt(ctrl), Type: PointQCurve})
			} else {
				c := QuadBez{prev.Pt, ctrl, pt}.Raise()
				prev.A = HandleAt(c.P1)
				cur.Nodes = append(cur.Nodes, Node{Pt: pt, B: HandleAt(c.P2), Type: PointCurve})
			}
		case sfnt.SegmentOpCubeTo:
			prev := &cur.Nodes[len(cur.Nodes)-1]
			prev.A = HandleAt(fixedToPoint(seg.Args[0]))
			cur.Nodes = append(cur.Nodes, Node{
				Pt:   fixedToPoint(seg.Args[2]),
				B:    HandleAt(fixedToPoint(seg.Args[1])),
				Type: PointCurve,
			})
		}
	}
	finish()
	return out
}

// closeLoop closes a contour whose last node returns to its first. Font
// outlines are always closed; the closing segment is implicit unless it is
// a curve.
func closeLoop(c Contour) Contour {
	c.Closed = true
	n := len(c.Nodes)
	if n > 1 && c.Nodes[n-1].Pt == c.Nodes[0].Pt {
		last := c.Nodes[n-1]
		c.Nodes = c.Nodes[:n-1]
		c.Nodes[0].B = last.B
		c.Nodes[0].Type = last.Type
	} else {
		c.Nodes[0].Type = PointLine
	}
	return c
}
