package typograf

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alnah/go-typograf/internal/remote"
)

// DefaultCacheSize is the number of service results kept by NewResultCache
// when size <= 0.
const DefaultCacheSize = 256

// ResultCache keeps raw service fragments keyed by the full request, so
// repeated documents in a batch cost a single service call. Local rendering
// options are not part of the key. Safe for concurrent use.
type ResultCache struct {
	entries *lru.Cache[remote.Request, string]
}

// NewResultCache creates a cache holding up to size results.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[remote.Request, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached result.
func (c *ResultCache) Purge() {
	c.entries.Purge()
}

func (c *ResultCache) get(req remote.Request) (string, bool) {
	return c.entries.Get(req)
}

func (c *ResultCache) add(req remote.Request, raw string) {
	c.entries.Add(req, raw)
}
