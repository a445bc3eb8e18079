// Package signal provides the in-process invalidation graph: every resource
// key is a node with a monotonically increasing version, and subscribers are
// notified synchronously whenever a node advances. Handlers must not perform
// I/O; derived views recompute inline from already-fetched values.
package signal

import "sync"

// Handler reacts to a node advancing.
type Handler func(key string)

// Bus is a synchronous fan-out hub keyed by resource key.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	versions    map[string]uint64
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string][]Handler),
		versions:    make(map[string]uint64),
	}
}

// Subscribe registers a handler for a key.
func (b *Bus) Subscribe(key string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[key] = append(b.subscribers[key], handler)
}

// Publish advances the key's version and notifies subscribers.
// Handlers run synchronously; the caller decides the concurrency model.
func (b *Bus) Publish(key string) {
	b.mu.Lock()
	b.versions[key]++
	handlers := append([]Handler(nil), b.subscribers[key]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(key)
	}
}

// Version returns the current version of a key. Keys that never advanced
// report zero.
func (b *Bus) Version(key string) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.versions[key]
}
