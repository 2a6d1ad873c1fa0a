package cache

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Manager wraps an in-process TTL cache for hot article queries. The
// aggregator flushes it after every run that inserted new articles.
type Manager struct {
	cache *cache.Cache
}

func NewManager(defaultTTL time.Duration) *Manager {
	return &Manager{
		cache: cache.New(defaultTTL, 10*time.Minute),
	}
}

func (m *Manager) Get(key string) (interface{}, bool) {
	return m.cache.Get(key)
}

func (m *Manager) Set(key string, value interface{}, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}

func (m *Manager) Delete(key string) {
	m.cache.Delete(key)
}

func (m *Manager) Flush() {
	m.cache.Flush()
}

// ListKey derives a cache key from the full set of list-query
// parameters so that distinct filters never collide. The time range is
// keyed by its symbolic name, not the resolved timestamp.
func ListKey(category, industry, search, timeRange string, limit, offset int) string {
	return fmt.Sprintf("articles:%s:%s:%s:%s:%d:%d",
		category, industry, search, timeRange, limit, offset)
}
