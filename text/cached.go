package text

import (
	"github.com/gogpu/bmfont/internal/cache"
)

// DefaultCacheSize is the number of lookups CachedProvider keeps by default.
const DefaultCacheSize = 4096

type lookupKey struct {
	r     rune
	style Style
}

type lookupResult struct {
	glyph Glyph
	ok    bool
}

// CachedProvider memoizes the lookups of another Provider, including misses.
// It is safe for concurrent use if the wrapped Provider is.
type CachedProvider struct {
	next  Provider
	cache *cache.Cache[lookupKey, lookupResult]
}

// NewCachedProvider wraps next with an LRU cache of size entries.
// A size <= 0 selects DefaultCacheSize.
func NewCachedProvider(next Provider, size int) *CachedProvider {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &CachedProvider{
		next:  next,
		cache: cache.New[lookupKey, lookupResult](size),
	}
}

// Lookup implements Provider.
func (c *CachedProvider) Lookup(r rune, style Style) (Glyph, bool) {
	res := c.cache.GetOrCreate(lookupKey{r: r, style: style}, func() lookupResult {
		g, ok := c.next.Lookup(r, style)
		return lookupResult{glyph: g, ok: ok}
	})
	return res.glyph, res.ok
}

// Stats returns the hit and miss counts of the cache.
func (c *CachedProvider) Stats() (hits, misses uint64) {
	s := c.cache.Stats()
	return s.Hits, s.Misses
}
