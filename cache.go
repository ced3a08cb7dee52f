package stagepage

import (
	"sync"
	"time"
)

// processedAsset is an encoded image ready to be served.
type processedAsset struct {
	data        []byte
	contentType string
	modTime     time.Time
	fetched     time.Time
}

// AssetCache is an in-memory cache of processed images with TTL. Entries are
// also invalidated when the source file's modification time changes.
type AssetCache struct {
	mu      sync.RWMutex
	entries map[string]processedAsset
	ttl     time.Duration
	now     func() time.Time
}

// NewAssetCache creates an AssetCache keeping entries for ttl.
func NewAssetCache(ttl time.Duration) *AssetCache {
	return &AssetCache{
		entries: make(map[string]processedAsset),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *AssetCache) valid(e processedAsset, modTime time.Time) bool {
	return e.modTime.Equal(modTime) && c.now().Sub(e.fetched) < c.ttl
}

// get returns the cached entry for path if it is fresh for modTime.
func (c *AssetCache) get(path string, modTime time.Time) (processedAsset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || !c.valid(e, modTime) {
		return processedAsset{}, false
	}
	return e, true
}

// Load returns the processed asset for path, calling fill on a miss. Only one
// fill runs at a time.
func (c *AssetCache) Load(path string, modTime time.Time, fill func() (processedAsset, error)) (processedAsset, error) {
	if e, ok := c.get(path, modTime); ok {
		return e, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok && c.valid(e, modTime) {
		return e, nil
	}
	e, err := fill()
	if err != nil {
		return processedAsset{}, err
	}
	e.modTime = modTime
	e.fetched = c.now()
	c.entries[path] = e
	return e, nil
}

// Invalidate clears the cache so the next read reprocesses from disk.
func (c *AssetCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]processedAsset)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *AssetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
