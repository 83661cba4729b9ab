package media

import "sync"

// probeCache caches probe results to avoid repeated ffprobe invocations for
// the same file within a run.
type probeCache struct {
	cache map[string]ProbeResult
	mu    sync.RWMutex
}

func newProbeCache() *probeCache {
	return &probeCache{cache: make(map[string]ProbeResult)}
}

func (c *probeCache) get(path string) (ProbeResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.cache[path]
	return r, ok
}

func (c *probeCache) set(path string, r ProbeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[path] = r
}

// invalidate drops a cached entry. Call after rewriting a file in place.
func (c *probeCache) invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, path)
}
