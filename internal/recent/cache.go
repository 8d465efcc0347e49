package recent

import (
	json "github.com/goccy/go-json"
	"meetup/internal/providers"
	"sync"
)

// DefaultCapacity is the number of entries a recent list keeps.
const DefaultCapacity = 10

// Identifiable is implemented by anything that can be tracked as recently viewed.
type Identifiable interface {
	RecentID() string
}

// Store is the key-value port the cache persists through.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

type options struct {
	capacity int
	logger   providers.Logger
}

type Option func(*options)

func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func WithLogger(logger providers.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Cache is an ordered, de-duplicated, bounded list of recently viewed entities,
// most recent first, written through to a Store on every mutation.
type Cache[T Identifiable] struct {
	mu       sync.Mutex
	key      string
	store    Store
	capacity int
	logger   providers.Logger
	items    []T
	// synced is false while the last write to store failed
	synced bool
}

// New builds a cache for key and loads its list from store. Missing or
// unparseable data yields an empty list. A failed read yields an empty,
// usable cache together with a *PersistenceError.
func New[T Identifiable](store Store, key string, opts ...Option) (*Cache[T], error) {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cache[T]{
		key:      key,
		store:    store,
		capacity: o.capacity,
		logger:   o.logger,
		items:    make([]T, 0),
	}

	return c, c.load()
}

func (c *Cache[T]) load() error {
	raw, ok, err := c.store.Get(c.key)
	if err != nil {
		return &PersistenceError{Op: OpLoad, Key: c.key, Err: err}
	}
	c.synced = true
	if !ok || len(raw) == 0 {
		return nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if c.logger != nil {
			c.logger.Warnf(providers.TypeStore, "Discarding unparseable recent list %s: %s", c.key, err)
		}
		return nil
	}

	c.items = normalize(items, c.capacity)
	return nil
}

// normalize keeps the first occurrence of every id, drops entries without an
// id and truncates to capacity.
func normalize[T Identifiable](items []T, capacity int) []T {
	out := make([]T, 0, min(len(items), capacity))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if len(out) == capacity {
			break
		}
		id := it.RecentID()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Key returns the store key of the cache.
func (c *Cache[T]) Key() string {
	return c.key
}

// All returns a copy of the current list. It never touches the store.
func (c *Cache[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// disposable reports whether dropping the cache loses nothing: the list is
// empty and the store agrees with it.
func (c *Cache[T]) disposable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0 && c.synced
}

// Add moves item to the front of the list, evicting the oldest entry when the
// list is full, and persists the result. An item without an id is ignored.
func (c *Cache[T]) Add(item T) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := item.RecentID()
	if id == "" {
		return c.snapshot(), nil
	}

	next := make([]T, 0, min(len(c.items)+1, c.capacity))
	next = append(next, item)
	for _, it := range c.items {
		if len(next) == c.capacity {
			break
		}
		if it.RecentID() == id {
			continue
		}
		next = append(next, it)
	}
	c.items = next

	return c.snapshot(), c.persist()
}

// Remove drops the entry with id and persists the list, even when nothing matched.
func (c *Cache[T]) Remove(id string) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if it.RecentID() != id {
			next = append(next, it)
		}
	}
	c.items = next

	return c.snapshot(), c.persist()
}

// persist must be called with mu held.
func (c *Cache[T]) persist() error {
	c.synced = false
	data, err := json.Marshal(c.items)
	if err != nil {
		return &PersistenceError{Op: OpEncode, Key: c.key, Err: err}
	}
	if err := c.store.Set(c.key, data); err != nil {
		return &PersistenceError{Op: OpSave, Key: c.key, Err: err}
	}
	c.synced = true
	return nil
}

func (c *Cache[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}
