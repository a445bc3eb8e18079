package store

import (
	"sync"

	"figaro/internal/signal"
)

// Derived is a view computed purely from the latest values of one or more
// resources. It recomputes synchronously whenever any declared input
// advances; the compute function must not perform I/O.
type Derived[T any] struct {
	mu      sync.Mutex
	compute func() T
	value   T
	token   uint64
	applied uint64
}

// NewDerived computes the initial value and subscribes to the input keys.
func NewDerived[T any](bus *signal.Bus, compute func() T, inputs ...string) *Derived[T] {
	d := &Derived[T]{compute: compute}
	d.value = compute()
	for _, key := range inputs {
		bus.Subscribe(key, func(string) { d.refresh() })
	}
	return d
}

// refresh recomputes under the same token discipline as Resource.run: inputs
// may advance from concurrent publishes, and a recompute that started before
// a newer one committed must not overwrite the fresher value.
func (d *Derived[T]) refresh() {
	d.mu.Lock()
	d.token++
	token := d.token
	d.mu.Unlock()

	value := d.compute()

	d.mu.Lock()
	if token >= d.applied {
		d.value = value
		d.applied = token
	}
	d.mu.Unlock()
}

// Value returns the latest derived value.
func (d *Derived[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}
