package recent

import "sync"

const (
	KeyRecentClubs    = "recentClubs"
	KeyRecentThunders = "recentThunders"
)

// Key scopes a base key to a browser profile.
func Key(profile, base string) string {
	if profile == "" {
		return base
	}
	return profile + ":" + base
}

type slot[T Identifiable] struct {
	cache *Cache[T]
	refs  int
}

// Registry hands out one Cache per profile for a single entity kind. Only
// profiles holding entries, or with a mutation in flight, keep a cache in
// memory; an empty list lives in the store alone.
type Registry[T Identifiable] struct {
	mu    sync.Mutex
	store Store
	base  string
	opts  []Option
	slots map[string]*slot[T]
}

func NewRegistry[T Identifiable](store Store, base string, opts ...Option) *Registry[T] {
	return &Registry[T]{
		store: store,
		base:  base,
		opts:  opts,
		slots: make(map[string]*slot[T]),
	}
}

// View returns the list of profile. A profile with nothing stored is read
// without being retained.
func (r *Registry[T]) View(profile string) ([]T, error) {
	key := Key(profile, r.base)

	r.mu.Lock()
	if s, ok := r.slots[key]; ok {
		r.mu.Unlock()
		return s.cache.All(), nil
	}
	defer r.mu.Unlock()

	c, err := New[T](r.store, key, r.opts...)
	if err != nil {
		return nil, err
	}
	if !c.disposable() {
		r.slots[key] = &slot[T]{cache: c}
	}
	return c.All(), nil
}

// Acquire returns the cache of profile pinned for a mutation, loading it on
// first access. release must be called once the mutation is done; it drops
// the cache again when the list ended up empty and persisted. A cache whose
// load failed is not retained, so the next call retries the read.
func (r *Registry[T]) Acquire(profile string) (*Cache[T], func(), error) {
	key := Key(profile, r.base)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[key]
	if !ok {
		c, err := New[T](r.store, key, r.opts...)
		if err != nil {
			return nil, func() {}, err
		}
		s = &slot[T]{cache: c}
		r.slots[key] = s
	}
	s.refs++

	var once sync.Once
	release := func() {
		once.Do(func() { r.release(key, s) })
	}
	return s.cache, release, nil
}

func (r *Registry[T]) release(key string, s *slot[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.refs--
	if s.refs == 0 && s.cache.disposable() && r.slots[key] == s {
		delete(r.slots, key)
	}
}

func (r *Registry[T]) Base() string {
	return r.base
}

// Len reports how many profiles have a cache in memory.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}
