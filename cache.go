package glyph

import (
	"container/list"
	"encoding/binary"
	"hash/maphash"
	"math"
)

// BuildCache memoizes [Build] for contours whose skeleton and operation are
// unchanged, evicting the least recently used results beyond its limit.
//
// Contours are identified by a 64-bit hash of their nodes and operation
// parameters. A BuildCache is not safe for concurrent use.
type BuildCache struct {
	seed    maphash.Seed
	limit   int
	entries map[uint64]*list.Element
	// Front is the most recently used entry.
	order *list.List

	hits   int
	misses int
}

type buildEntry struct {
	key uint64
	out Outline
}

// NewBuildCache returns a cache holding at most limit results. A limit of 0
// means unlimited.
func NewBuildCache(limit int) *BuildCache {
	return &BuildCache{
		seed:    maphash.MakeSeed(),
		limit:   limit,
		entries: make(map[uint64]*list.Element),
		order:   list.New(),
	}
}

// Build is like [Build] but reuses an earlier result for an identical
// contour. The returned outline may be modified by the caller.
func (bc *BuildCache) Build(c Contour) Outline {
	if c.Op == nil {
		return Outline{c}
	}
	key := bc.key(c)
	if el, ok := bc.entries[key]; ok {
		bc.hits++
		bc.order.MoveToFront(el)
		return el.Value.(*buildEntry).out.Clone()
	}
	bc.misses++
	out := Build(c)
	bc.entries[key] = bc.order.PushFront(&buildEntry{key: key, out: out.Clone()})
	if bc.limit > 0 {
		for bc.order.Len() > bc.limit {
			oldest := bc.order.Back()
			bc.order.Remove(oldest)
			delete(bc.entries, oldest.Value.(*buildEntry).key)
		}
	}
	return out
}

// Len returns the number of cached results.
func (bc *BuildCache) Len() int {
	return bc.order.Len()
}

// Clear drops all cached results.
func (bc *BuildCache) Clear() {
	clear(bc.entries)
	bc.order.Init()
}

// Stats returns the number of cache hits and misses since creation.
func (bc *BuildCache) Stats() (hits, misses int) {
	return bc.hits, bc.misses
}

func (bc *BuildCache) key(c Contour) uint64 {
	var h maphash.Hash
	h.SetSeed(bc.seed)
	hashContour(&h, c)
	return h.Sum64()
}

func hashContour(h *maphash.Hash, c Contour) {
	hashInt(h, len(c.Nodes))
	for _, n := range c.Nodes {
		hashPoint(h, n.Pt)
		hashHandle(h, n.A)
		hashHandle(h, n.B)
		hashInt(h, int(n.Type))
	}
	hashBool(h, c.Closed)
	hashInt(h, int(c.Repr))
	if c.Op == nil {
		hashInt(h, 0)
	} else {
		c.Op.hash(h)
	}
}

func hashOutline(h *maphash.Hash, o Outline) {
	hashInt(h, len(o))
	for _, c := range o {
		hashContour(h, c)
	}
}

func hashHandle(h *maphash.Hash, hd Handle) {
	hashBool(h, hd.Set)
	if hd.Set {
		hashPoint(h, hd.Pos)
	}
}

func hashPoint(h *maphash.Hash, pt Point) {
	hashFloat(h, pt.X)
	hashFloat(h, pt.Y)
}

func hashFloat(h *maphash.Hash, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	h.Write(buf[:])
}

func hashInt(h *maphash.Hash, i int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	h.Write(buf[:])
}

func hashBool(h *maphash.Hash, b bool) {
	if b {
		h.WriteByte(1)
	} else {
		h.WriteByte(0)
	}
}
