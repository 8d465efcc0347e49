package providers

import (
	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"
	"meetup/internal/structures"
)

// CacheProviderInterface is a byte cache with per-entry TTL. Entries are
// dropped explicitly with Del whenever the underlying data changes.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
	Entries() int64
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Roster cache disabled")
		return &noopCache{}
	}

	// freecache expires in whole seconds
	ttl := max(int(conf.Cache.TTL.Seconds()), 1)
	logger.Infof(TypeApp, "Roster cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del([]byte(key))
}

func (c *CacheProvider) Entries() int64 {
	return c.cache.EntryCount()
}

// LoadJSON decodes the cached value of key into dst. An entry that no longer
// decodes is evicted and reported as a miss.
func LoadJSON(c CacheProviderInterface, key string, dst any) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.Del(key)
		return false
	}
	return true
}

// StoreJSON caches the JSON encoding of v under key. Values that fail to
// encode are not cached.
func StoreJSON(c CacheProviderInterface, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(key, data)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Del(_ string)                {}
func (n *noopCache) Entries() int64              { return 0 }
