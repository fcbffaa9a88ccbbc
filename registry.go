package pageflow

import (
	"fmt"
	"hash/maphash"
)

// PageEntry is the retained record for one page key: its component, its
// header and the stable layer id used by the compositor.
type PageEntry[M any] struct {
	ID        uint64
	Chrome    *Header[M]
	Component Page[M]
}

// Registry owns page instances keyed by their Mapper value. Entries are
// created at most once per key and never evicted.
type Registry[K comparable, M any] struct {
	seed    maphash.Seed
	entries map[K]*PageEntry[M]
	order   []K
}

// NewRegistry creates an empty registry with a fresh id seed.
func NewRegistry[K comparable, M any]() *Registry[K, M] {
	return &Registry[K, M]{
		seed:    maphash.MakeSeed(),
		entries: make(map[K]*PageEntry[M]),
	}
}

// ID returns the layer id for key. It is stable for the registry's lifetime.
func (r *Registry[K, M]) ID(key K) uint64 {
	return maphash.Comparable(r.seed, key)
}

// GetOrCreate returns the entry for key, calling build only if none exists.
// The second result reports whether the entry was created by this call.
func (r *Registry[K, M]) GetOrCreate(key K, build func(K) *PageEntry[M]) (*PageEntry[M], bool) {
	if e, ok := r.entries[key]; ok {
		return e, false
	}
	e := build(key)
	if e == nil {
		panic(fmt.Sprintf("pageflow: builder returned nil entry for page %v", key))
	}
	e.ID = r.ID(key)
	r.entries[key] = e
	r.order = append(r.order, key)
	return e, true
}

// Lookup returns the entry for key. A missing entry is a programming error.
func (r *Registry[K, M]) Lookup(key K) *PageEntry[M] {
	e, ok := r.entries[key]
	if !ok {
		panic(fmt.Sprintf("pageflow: page %v should have been initialized", key))
	}
	return e
}

// Get returns the entry for key, if any.
func (r *Registry[K, M]) Get(key K) (*PageEntry[M], bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Contains reports whether key has an entry.
func (r *Registry[K, M]) Contains(key K) bool {
	_, ok := r.entries[key]
	return ok
}

// Len returns the number of entries.
func (r *Registry[K, M]) Len() int { return len(r.entries) }

// Keys returns the keys in creation order.
func (r *Registry[K, M]) Keys() []K {
	return append([]K(nil), r.order...)
}
