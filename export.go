package glyph

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func toVec(pt Point) vec.Vec2 {
	return vec.Vec2{X: pt.X, Y: pt.Y}
}

// Path returns the contour's skeleton as a path. The operation is ignored;
// use [Build] first to export resolved geometry.
//
// Straight segments become line commands and quadratic contours produce
// quadratic commands.
func (c Contour) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		c.yieldPath(yield)
	}
}

func (c Contour) yieldPath(yield func(path.Command, []vec.Vec2) bool) bool {
	if len(c.Nodes) == 0 {
		return true
	}
	var buf [3]vec.Vec2
	buf[0] = toVec(c.Nodes[0].Pt)
	if !yield(path.CmdMoveTo, buf[:1]) {
		return false
	}
	for i := range c.NumSegments() {
		a := c.Nodes[i]
		b := c.Nodes[(i+1)%len(c.Nodes)]
		var ok bool
		switch {
		case c.Repr == QuadraticRepresentation && a.A.Set:
			buf[0], buf[1] = toVec(a.A.Pos), toVec(b.Pt)
			ok = yield(path.CmdQuadTo, buf[:2])
		case c.Repr == CubicRepresentation && (a.A.Set || b.B.Set):
			buf[0], buf[1], buf[2] = toVec(a.A.Resolve(a.Pt)), toVec(b.B.Resolve(b.Pt)), toVec(b.Pt)
			ok = yield(path.CmdCubeTo, buf[:3])
		default:
			buf[0] = toVec(b.Pt)
			ok = yield(path.CmdLineTo, buf[:1])
		}
		if !ok {
			return false
		}
	}
	if c.Closed {
		return yield(path.CmdClose, nil)
	}
	return true
}

// Path returns all contours of o as a single path.
func (o Outline) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, c := range o {
			if !c.yieldPath(yield) {
				return
			}
		}
	}
}

// PathData returns o as a stored path, as consumed by rasterizers.
func (o Outline) PathData() *path.Data {
	d := &path.Data{}
	for cmd, pts := range o.Path() {
		switch cmd {
		case path.CmdMoveTo:
			d = d.MoveTo(pts[0])
		case path.CmdLineTo:
			d = d.LineTo(pts[0])
		case path.CmdQuadTo:
			d = d.QuadTo(pts[0], pts[1])
		case path.CmdCubeTo:
			d = d.CubeTo(pts[0], pts[1], pts[2])
		case path.CmdClose:
			d = d.Close()
		}
	}
	return d
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts a path to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(p path.Path, opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, p, opts)
	return sb.String()
}

// WriteSVG converts a path to a string of SVG path commands and writes it to
// w.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func WriteSVG(w io.Writer, p path.Path, opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	}
	first := true
	for cmd, pts := range p {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		switch cmd {
		case path.CmdMoveTo:
			writef("M%s,%s", format(pts[0].X), format(pts[0].Y))
		case path.CmdLineTo:
			writef("L%s,%s", format(pts[0].X), format(pts[0].Y))
		case path.CmdQuadTo:
			writef("Q%s,%s %s,%s",
				format(pts[0].X), format(pts[0].Y),
				format(pts[1].X), format(pts[1].Y))
		case path.CmdCubeTo:
			writef("C%s,%s %s,%s %s,%s",
				format(pts[0].X), format(pts[0].Y),
				format(pts[1].X), format(pts[1].Y),
				format(pts[2].X), format(pts[2].Y))
		case path.CmdClose:
			write(z)
		}
	}
	return err
}
