package divpoly

import (
	"github.com/smallyu/go-eds-dlp/internal/crypto/curves"
	"github.com/smallyu/go-eds-dlp/internal/crypto/field"
)

// Cache memoizes psi_n values keyed by (n, x, y). Values are only ever
// inserted: psi_n at a fixed point never changes, so an entry is never
// overwritten or invalidated while the cache lives. A Cache belongs to one
// Evaluator and is not safe for concurrent use.
type Cache struct {
	points map[string]*pointCache
	size   int
}

type pointCache struct {
	values  map[int64]field.Element
	psi2Inv *field.Element
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{points: make(map[string]*pointCache)}
}

// Len returns the number of memoized psi values across all points.
func (c *Cache) Len() int {
	return c.size
}

// Points returns the number of distinct points with memoized values.
func (c *Cache) Points() int {
	return len(c.points)
}

func (c *Cache) forPoint(key string) *pointCache {
	pc, ok := c.points[key]
	if !ok {
		pc = &pointCache{values: make(map[int64]field.Element)}
		c.points[key] = pc
	}
	return pc
}

func (c *Cache) get(pc *pointCache, n int64) (field.Element, bool) {
	v, ok := pc.values[n]
	return v, ok
}

func (c *Cache) put(pc *pointCache, n int64, v field.Element) {
	if _, ok := pc.values[n]; ok {
		return
	}
	pc.values[n] = v
	c.size++
}

// pointKey encodes the coordinates at a fixed width so that distinct points
// never collide.
func pointKey(f *field.Field, pt curves.Point) string {
	return string(f.Bytes(pt.X)) + string(f.Bytes(pt.Y))
}
