package arraymerkle

import lru "github.com/hashicorp/golang-lru"

// HashCache memoizes the hashes DefaultHash computes for strings, which
// otherwise cost a blake2b sum on every update of a hot key.
type HashCache interface {
	// Add records the hash of the given string.
	Add(key, value interface{})
	// Get retrieves a previously-added hash, if cached.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewHashCache creates a new ARC-based hash cache of the given size. One
// cache can be shared by any number of trees.
func NewHashCache(size int) HashCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}
