package api

import (
	"sync"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
)

// responseCache is an httpcache.Cache that can drop every stored response.
// Cached entries carry the Authorization header they vary on, so they must
// not outlive the session that fetched them.
type responseCache interface {
	httpcache.Cache
	Flush() error
}

func newResponseCache(dir string) responseCache {
	if dir == "" {
		return &memoryCache{cache: httpcache.NewMemoryCache()}
	}

	d := diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 100 * 1024 * 1024,
	})
	return &diskCache{Cache: diskcache.NewWithDiskv(d), store: d}
}

type memoryCache struct {
	mu    sync.RWMutex
	cache *httpcache.MemoryCache
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.Get(key)
}

func (m *memoryCache) Set(key string, resp []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.cache.Set(key, resp)
}

func (m *memoryCache) Delete(key string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.cache.Delete(key)
}

func (m *memoryCache) Flush() error {
	m.mu.Lock()
	m.cache = httpcache.NewMemoryCache()
	m.mu.Unlock()
	return nil
}

type diskCache struct {
	*diskcache.Cache
	store *diskv.Diskv
}

// Flush removes the cache directory; diskv recreates it on the next write.
func (d *diskCache) Flush() error {
	return d.store.EraseAll()
}
