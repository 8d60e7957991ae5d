package util

import "sync"

// GenericMap is a concurrent safe map with generic key and value types.
type GenericMap[K comparable, V any] struct {
	m sync.Map
}

// NewGenericMap creates a new instance of GenericMap.
func NewGenericMap[K comparable, V any]() *GenericMap[K, V] {
	return &GenericMap[K, V]{}
}

// Load returns the value stored in the map for a key, or the zero value
// if no value is present.
// The ok result indicates whether value was found in the map.
func (m *GenericMap[K, V]) Load(key K) (value V, ok bool) {
	v, loaded := m.m.Load(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// Store sets the value for a key.
func (m *GenericMap[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

// Delete deletes the value for a key.
func (m *GenericMap[K, V]) Delete(key K) {
	m.m.Delete(key)
}

// LoadOrStore returns the existing value for the key if present.
// Otherwise, it stores and returns the given value.
// The loaded result is true if the value was loaded, false if stored.
func (m *GenericMap[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	v, loaded := m.m.LoadOrStore(key, value)
	return v.(V), loaded
}

func (m *GenericMap[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(k, v any) bool {
		return f(k.(K), v.(V))
	})
}
