// Package statex provides a small observable value container: the latest
// snapshot is always readable, and subscribers are notified after every
// mutation. It backs the reactive state exposed by the auth service and
// the practice engine.
package statex

import "sync"

// Value holds a current value of type T and fans out updates to
// subscribers. Subscriber channels have a buffer of one and carry the
// latest value only: if a subscriber is slow, intermediate values are
// dropped and replaced, never blocking the mutator.
type Value[T any] struct {
	mu     sync.Mutex
	cur    T
	subs   map[int]chan T
	nextID int
}

// New returns a Value initialized with initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[int]chan T)}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set replaces the current value and notifies subscribers.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	v.notifyLocked()
}

// Update applies fn to the current value, stores the result, notifies
// subscribers and returns the new value.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = fn(v.cur)
	v.notifyLocked()
	return v.cur
}

// Subscribe registers a new subscriber. The returned channel immediately
// carries the current value. The cancel function removes the subscription
// and closes the channel; it is safe to call more than once.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, 1)
	ch <- v.cur
	id := v.nextID
	v.nextID++
	v.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if sub, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (v *Value[T]) notifyLocked() {
	for _, ch := range v.subs {
		// Drain a stale value if the subscriber has not consumed it yet,
		// then deliver the latest one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v.cur:
		default:
		}
	}
}
