package butcher

import (
	"reflect"
	"sync"
)

var (
	registry   = make(map[reflect.Type]any)
	registryMu sync.RWMutex
)

// For returns a cached struct butcher for T, building one on first use.
// Options apply only on the call that builds the butcher; later calls for
// the same type return the cached instance unchanged.
func For[T any](opts ...Option) (*Butcher[T], error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[typ]; ok {
		registryMu.RUnlock()
		return cached.(*Butcher[T]), nil
	}
	registryMu.RUnlock()

	// Slow path: build and cache with write-lock
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if cached, ok := registry[typ]; ok {
		return cached.(*Butcher[T]), nil
	}

	b, err := NewStruct[T](opts...)
	if err != nil {
		return nil, err
	}

	registry[typ] = b
	return b, nil
}

// ForEnum returns a cached enum butcher for interface type T, building one
// from the given variants on first use. The variant list matters only on the
// building call; later calls return the cached instance.
func ForEnum[T any](variants []VariantDescriptor, opts ...Option) (*Butcher[T], error) {
	typ := reflect.TypeFor[T]()

	registryMu.RLock()
	if cached, ok := registry[typ]; ok {
		registryMu.RUnlock()
		return cached.(*Butcher[T]), nil
	}
	registryMu.RUnlock()

	registryMu.Lock()
	defer registryMu.Unlock()

	if cached, ok := registry[typ]; ok {
		return cached.(*Butcher[T]), nil
	}

	b, err := NewEnum[T](variants, opts...)
	if err != nil {
		return nil, err
	}

	registry[typ] = b
	return b, nil
}

// Reset clears the butcher registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[reflect.Type]any)
}
