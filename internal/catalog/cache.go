package catalog

import (
	"sync"

	"inkwell/internal/archive"
)

// Snapshotter is the slice of the store the cache needs: a collection
// snapshot and the revision counter identifying it.
type Snapshotter interface {
	Articles() []archive.Article
	Revision() uint64
}

// Cache memoizes the category index per store revision so repeated reads
// between mutations reuse the previous computation.
type Cache struct {
	source Snapshotter

	mu       sync.Mutex
	revision uint64
	valid    bool
	index    []CategoryEntry
}

// NewCache builds a cache over the provided snapshot source.
func NewCache(source Snapshotter) *Cache {
	return &Cache{source: source}
}

// Index returns the memoized category index, recomputing it only when the
// store revision moved.
func (c *Cache) Index() []CategoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	revision := c.source.Revision()
	if !c.valid || revision != c.revision {
		c.index = BuildCategoryIndex(c.source.Articles())
		c.revision = revision
		c.valid = true
	}
	return c.index
}
