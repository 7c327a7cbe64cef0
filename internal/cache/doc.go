// Package cache provides a small generic LRU cache used to memoize glyph
// lookups and blur kernels.
//
//	c := cache.New[rune, int](256)
//	v := c.GetOrCreate('A', func() int { return 42 })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
