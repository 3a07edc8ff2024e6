package glyph

import (
	"math"
	"slices"
)

// flatten approximates the closed contour c with a polygon whose edges
// deviate from the curve by at most tolerance. The first point is not
// repeated at the end.
func flatten(c Contour, tolerance float64) []Point {
	var pts []Point
	for i := range c.NumSegments() {
		seg := c.Segment(i)
		pts = append(pts, seg.P0)
		if seg.IsLinear(linearTolerance) {
			continue
		}
		// Wang's formula for the number of subdivisions of a cubic.
		dd := max(
			seg.P0.Sub(seg.P1).Sub(seg.P1.Sub(seg.P2)).Hypot(),
			seg.P1.Sub(seg.P2).Sub(seg.P2.Sub(seg.P3)).Hypot(),
		)
		n := max(int(math.Ceil(math.Sqrt(0.75*dd/tolerance))), 1)
		for j := 1; j < n; j++ {
			pts = append(pts, seg.Eval(float64(j)/float64(n)))
		}
	}
	return pts
}

// winding returns the winding number of the polygon around pt.
func winding(poly []Point, pt Point) int {
	w := 0
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && (b.Sub(a)).Cross(pt.Sub(a)) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && (b.Sub(a)).Cross(pt.Sub(a)) < 0 {
			w--
		}
	}
	return w
}

type unionEdge struct {
	line  Line
	group int
	box   Rect
	// Parameters and points at which the edge is cut, including both ends.
	cuts []edgeCut
}

type edgeCut struct {
	t  float64
	pt Point
}

// unionEpsilon is the distance, in glyph units, within which a point is
// considered to lie on an edge.
const unionEpsilon = 1e-7

// union merges groups of polygons into the boundary of the area covered by
// at least one group, using the nonzero rule within each group. All groups
// are expected to share an orientation.
//
// Every edge is cut where it crosses or overlaps edges of other groups. A
// fragment is part of the result if its midpoint lies outside all other
// groups. Where fragments of two groups coincide, one of them is kept if
// they run in the same direction and neither if they don't. The kept
// fragments are then chained into loops.
func union(groups [][][]Point) [][]Point {
	var edges []unionEdge
	for g, polys := range groups {
		for _, poly := range polys {
			for i, a := range poly {
				b := poly[(i+1)%len(poly)]
				if a == b {
					continue
				}
				edges = append(edges, unionEdge{
					line:  Line{a, b},
					group: g,
					box:   NewRectFromPoints(a, b).Inflate(unionEpsilon, unionEpsilon),
					cuts:  []edgeCut{{0, a}, {1, b}},
				})
			}
		}
	}

	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			ei, ej := &edges[i], &edges[j]
			if ei.group == ej.group || !ei.box.Overlaps(ej.box) {
				continue
			}
			t, u, ok := ei.line.Intersect(ej.line)
			if !ok {
				// Overlapping collinear edges are cut at each other's ends.
				ei.cutAtVertices(ej.line)
				ej.cutAtVertices(ei.line)
				continue
			}
			// Both edges are cut at the same point so that fragments meet
			// exactly. Crossings at a vertex use the vertex itself.
			pt := ei.line.Eval(t)
			for _, v := range [4]Point{ei.line.P0, ei.line.P1, ej.line.P0, ej.line.P1} {
				if pt.Near(v, unionEpsilon) {
					pt = v
					break
				}
			}
			ei.cuts = append(ei.cuts, edgeCut{t, pt})
			ej.cuts = append(ej.cuts, edgeCut{u, pt})
		}
	}

	type fragment struct {
		from, to Point
		used     bool
	}
	var frags []*fragment
	// Kept fragments, indexed by their start point.
	starts := map[Point][]*fragment{}
	for _, e := range edges {
		slices.SortFunc(e.cuts, func(a, b edgeCut) int {
			switch {
			case a.t < b.t:
				return -1
			case a.t > b.t:
				return 1
			default:
				return 0
			}
		})
		for k := 0; k+1 < len(e.cuts); k++ {
			a, b := e.cuts[k].pt, e.cuts[k+1].pt
			if a == b {
				continue
			}
			if covered(groups, edges, e.group, a.Midpoint(b), b.Sub(a)) {
				continue
			}
			f := &fragment{from: a, to: b}
			frags = append(frags, f)
			starts[a] = append(starts[a], f)
		}
	}

	var out [][]Point
	for _, f := range frags {
		if f.used {
			continue
		}
		var loop []Point
		for cur := f; cur != nil; {
			cur.used = true
			loop = append(loop, cur.from)
			var next *fragment
			for _, cand := range starts[cur.to] {
				if !cand.used {
					next = cand
					break
				}
			}
			cur = next
		}
		if len(loop) >= 3 {
			out = append(out, loop)
		}
	}
	return out
}

// cutAtVertices cuts e where the endpoints of the collinear line o lie on it.
func (e *unionEdge) cutAtVertices(o Line) {
	ab := e.line.P1.Sub(e.line.P0)
	l2 := ab.Hypot2()
	for _, pt := range [2]Point{o.P0, o.P1} {
		ap := pt.Sub(e.line.P0)
		if math.Abs(ab.Cross(ap)) > unionEpsilon*math.Sqrt(l2) {
			continue
		}
		if t := ap.Dot(ab) / l2; t > 0 && t < 1 {
			e.cuts = append(e.cuts, edgeCut{t, pt})
		}
	}
}

// covered reports whether the fragment of group with midpoint m and
// direction dir lies inside, or on the boundary of, another group.
func covered(groups [][][]Point, edges []unionEdge, group int, m Point, dir Vec2) bool {
	for g, polys := range groups {
		if g == group {
			continue
		}
		if on, same := onBoundary(edges, g, m, dir); on {
			if !same || g < group {
				return true
			}
			continue
		}
		w := 0
		for _, poly := range polys {
			w += winding(poly, m)
		}
		if w != 0 {
			return true
		}
	}
	return false
}

// onBoundary reports whether m lies on an edge of group, and if so, whether
// that edge runs in the direction of dir.
func onBoundary(edges []unionEdge, group int, m Point, dir Vec2) (on, same bool) {
	for _, e := range edges {
		if e.group != group || !e.box.Overlaps(NewRectFromPoints(m, m)) {
			continue
		}
		ab := e.line.P1.Sub(e.line.P0)
		am := m.Sub(e.line.P0)
		t := am.Dot(ab) / ab.Hypot2()
		if t < 0 || t > 1 {
			continue
		}
		if e.line.Eval(t).Distance(m) <= unionEpsilon {
			return true, ab.Dot(dir) > 0
		}
	}
	return false, false
}

// unionOutlines merges the closed contours of several outlines, returning
// line contours.
func unionOutlines(outlines []Outline, tolerance float64) Outline {
	groups := make([][][]Point, len(outlines))
	for i, o := range outlines {
		for _, c := range o {
			if pts := flatten(c, tolerance); len(pts) >= 3 {
				groups[i] = append(groups[i], pts)
			}
		}
	}
	var out Outline
	for _, loop := range union(groups) {
		c := Contour{Closed: true, Repr: CubicRepresentation, Nodes: make([]Node, len(loop))}
		for i, pt := range loop {
			c.Nodes[i] = Node{Pt: pt, Type: PointLine}
		}
		out = append(out, c)
	}
	return out
}
