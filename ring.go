// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"code.hybscloud.com/atomix"
)

// Ring is a bounded single-producer single-consumer queue.
//
// Ring is a classic SPSC ring buffer with one reserved slot: `head` is the
// slot the consumer reads next, `tail` is the slot the producer writes next,
// and the queue is empty when head == tail and full when advancing tail
// would land on head. A Ring of capacity n therefore buffers at most n-1
// elements; the reserved slot is what lets the two states be told apart
// without a shared counter.
//
// Unlike the free-running-index variants elsewhere in this ecosystem, the
// capacity is exact: no rounding to a power of 2. Indices cycle through
// 0..capacity-1 and wrap by an increment-and-compare, not a modulo.
//
// Each index is written only by its owning goroutine. The producer loads its
// own tail relaxed, the consumer's head with acquire, and publishes with a
// release store; the consumer mirrors this. The acquire/release pair on the
// far index is what makes a published value visible to the consumer and a
// freed slot visible to the producer. No stronger ordering is used anywhere
// on this path.
//
// Memory: O(capacity), allocated once at construction. The hot indices sit
// on separate cache lines to prevent false sharing.
type Ring[T any] struct {
	_        pad
	head     atomix.Uint64 // Consumer reads from here
	_        pad
	tail     atomix.Uint64 // Producer writes here
	_        pad
	buffer   []T
	capacity uint64
}

// NewRing creates a new bounded SPSC ring buffer with exactly capacity
// slots, of which capacity-1 are usable (one slot is reserved to
// distinguish full from empty).
//
// Panics if capacity < 2.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("spsc: capacity must be >= 2")
	}

	return &Ring[T]{
		buffer:   make([]T, capacity),
		capacity: uint64(capacity),
	}
}

// advance returns the slot index following i, wrapping to 0 at capacity.
// An increment and compare, never a division.
func (q *Ring[T]) advance(i uint64) uint64 {
	i++
	if i == q.capacity {
		return 0
	}
	return i
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full; in that case the queue is
// not mutated and *elem is untouched, so the caller may retry or drop.
func (q *Ring[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	next := q.advance(tail)
	if next == q.head.LoadAcquire() {
		return ErrWouldBlock
	}

	q.buffer[tail] = *elem
	q.tail.StoreRelease(next)
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// The freed slot is zeroed before it is handed back to the producer, so
// pointers held by dequeued elements do not pin their referents.
func (q *Ring[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := q.buffer[head]
	var zero T
	q.buffer[head] = zero
	q.head.StoreRelease(q.advance(head))
	return elem, nil
}

// Cap returns the configured slot count. At most Cap()-1 elements are
// buffered at once.
func (q *Ring[T]) Cap() int {
	return int(q.capacity)
}

// Empty reports whether the queue is empty.
//
// The result is a best-effort snapshot: under concurrent use it may be
// stale the instant it is returned. Not a synchronization primitive.
func (q *Ring[T]) Empty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// Full reports whether the queue is full, i.e. Cap()-1 elements are
// resident and unread.
//
// Best-effort snapshot, same caveat as Empty.
func (q *Ring[T]) Full() bool {
	return q.advance(q.tail.LoadAcquire()) == q.head.LoadAcquire()
}

// Clear discards every resident element, zeroing each live slot in ring
// order, and returns the number discarded.
//
// Clear requires exclusive access: it is a teardown operation for when
// both goroutines are done with the queue, not for concurrent use.
func (q *Ring[T]) Clear() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadAcquire()

	var zero T
	n := 0
	for i := head; i != tail; i = q.advance(i) {
		q.buffer[i] = zero
		n++
	}
	q.head.StoreRelaxed(tail)
	return n
}
