// Package state provides a small observable container: a value plus a set
// of subscribers notified whenever the value is replaced. Consumers read
// immutable snapshots and must not mutate what they receive.
package state

import "sync"

// Value holds a snapshot of T and notifies subscribers on replacement.
type Value[T any] struct {
	mu   sync.RWMutex
	val  T
	subs map[int]func(T)
	next int
}

// NewValue creates a Value holding the initial snapshot.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{val: initial, subs: make(map[int]func(T))}
}

// Get returns the current snapshot.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

// Set replaces the snapshot and notifies all subscribers with the new value.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	v.val = val
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(val)
	}
}

// Update applies fn to the current snapshot and stores the result, under
// a single lock so concurrent updates do not interleave.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	v.val = fn(v.val)
	val := v.val
	subs := make([]func(T), 0, len(v.subs))
	for _, s := range v.subs {
		subs = append(subs, s)
	}
	v.mu.Unlock()

	for _, s := range subs {
		s(val)
	}
}

// Subscribe registers fn to run on every subsequent Set or Update. The
// returned cancel function removes the subscription; calling it more than
// once is safe.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}
