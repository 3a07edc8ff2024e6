package glyph

import (
	"hash/maphash"
	"math"
	"slices"
)

// DashAlongPath cuts its skeleton into dashes and outlines each dash with a
// stroke of constant width.
type DashAlongPath struct {
	// Lengths of dashes in alternating on/off order.
	Dashes []float64
	// Offset of the first dash.
	Offset float64
	Width  float64
	Cap    Cap
	// Dashes shorter than MinLength are dropped.
	MinLength float64
}

var _ Operation = DashAlongPath{}

func (DashAlongPath) Kind() OperationKind { return DashAlongPathKind }

// maxDashes bounds the number of dashes a single skeleton can produce.
const maxDashes = 100_000

// intervals returns the arc length intervals covered by dashes on a path of
// length l.
func (d DashAlongPath) intervals(l float64) ([][2]float64, error) {
	var total float64
	for _, dash := range d.Dashes {
		if dash < 0 || math.IsNaN(dash) || math.IsInf(dash, 0) {
			return nil, ErrInvalidDashes
		}
		total += dash
	}
	if len(d.Dashes) == 0 || total <= 0 {
		return nil, ErrInvalidDashes
	}
	if l/total*float64(len(d.Dashes)) > maxDashes {
		return nil, ErrInvalidDashes
	}

	// Find place in dashes array for initial offset.
	idx := 0
	active := true
	remaining := d.Dashes[0] - math.Mod(d.Offset, total)
	if d.Offset < 0 {
		remaining -= total
	}
	for remaining <= 0 {
		idx = (idx + 1) % len(d.Dashes)
		remaining += d.Dashes[idx]
		active = !active
	}

	var out [][2]float64
	for s := 0.0; s < l; {
		end := min(s+remaining, l)
		if active && end-s >= max(d.MinLength, 1e-9) {
			out = append(out, [2]float64{s, end})
		}
		s = end
		idx = (idx + 1) % len(d.Dashes)
		remaining = d.Dashes[idx]
		active = !active
	}
	return out, nil
}

func (d DashAlongPath) build(c Contour) (Outline, error) {
	if d.Width <= 0 {
		return nil, ErrInvalidDashes
	}
	if len(c.Nodes) < 2 {
		return nil, ErrDegenerateSkeleton
	}
	m := NewPiecewise(c).measure(DefaultAccuracy)
	if m.length() <= 0 {
		return nil, ErrDegenerateSkeleton
	}
	ivs, err := d.intervals(m.length())
	if err != nil {
		return nil, err
	}

	style := strokeStyle{
		startCap:   d.Cap,
		endCap:     d.Cap,
		join:       RoundJoin,
		miterLimit: 4,
	}
	half := d.Width / 2
	var out Outline
	for _, iv := range ivs {
		var spans []strokeSpan
		for _, seg := range m.sub(iv[0], iv[1]).Segs {
			if isPoint(seg) {
				continue
			}
			spans = append(spans, strokeSpan{
				seg:   seg,
				left:  [2]float64{half, half},
				right: [2]float64{half, half},
			})
		}
		if len(spans) > 0 {
			out = append(out, style.strokeOpen(spans))
		}
	}
	return out, nil
}

func (d DashAlongPath) sub(c Contour, begin, end int) Operation { return d }

func (d DashAlongPath) append(c, other Contour) (Operation, error) { return d, nil }

func (d DashAlongPath) insert(c Contour, idx int) Operation { return d }

func (d DashAlongPath) hash(h *maphash.Hash) {
	hashInt(h, int(d.Kind()))
	hashInt(h, len(d.Dashes))
	for _, dash := range d.Dashes {
		hashFloat(h, dash)
	}
	hashFloat(h, d.Offset)
	hashFloat(h, d.Width)
	hashInt(h, int(d.Cap))
	hashFloat(h, d.MinLength)
}

// withDashes returns d with its own copy of dashes.
func (d DashAlongPath) withDashes(dashes []float64) DashAlongPath {
	d.Dashes = slices.Clone(dashes)
	return d
}
