// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

const (
	segmentShift = 8
	// SegmentSize is the slot count of one unbounded-queue segment.
	// Power of 2 so the ring indices wrap by mask. One slot per segment
	// is reserved (same full/empty discipline as Ring), so a segment
	// holds SegmentSize-1 elements.
	SegmentSize = 1 << segmentShift
	segmentMask = SegmentSize - 1
)

// segment is one fixed-size ring buffer node of a Chain.
//
// Index discipline is identical to Ring: relaxed load of the own index,
// acquire load of the far index, release store to publish. The buffer is
// inline so a segment is a single allocation.
//
// next is append-only: written at most once, by the producer, when this
// segment fills; read by the consumer once this segment drains. The link
// uses a GC-traced atomic.Pointer rather than a raw word so the successor
// stays reachable (its ordering is a superset of release/acquire, and the
// link is off the hot path).
type segment[T any] struct {
	_    pad
	head atomix.Uint64
	_    pad
	tail atomix.Uint64
	_    pad
	next atomic.Pointer[segment[T]]
	_    padPtr
	buf  [SegmentSize]T
}

// enqueue attempts to add an element (producer only).
// Reports false if the segment is full; the segment is not mutated.
func (s *segment[T]) enqueue(elem *T) bool {
	tail := s.tail.LoadRelaxed()
	next := (tail + 1) & segmentMask
	if next == s.head.LoadAcquire() {
		return false
	}

	s.buf[tail] = *elem
	s.tail.StoreRelease(next)
	return true
}

// dequeue attempts to remove an element (consumer only).
// Reports false if the segment is empty. Frees the slot by zeroing it
// before publishing the new head.
func (s *segment[T]) dequeue() (T, bool) {
	head := s.head.LoadRelaxed()
	if head == s.tail.LoadAcquire() {
		var zero T
		return zero, false
	}

	elem := s.buf[head]
	var zero T
	s.buf[head] = zero
	s.head.StoreRelease((head + 1) & segmentMask)
	return elem, true
}

// empty reports whether the segment holds no elements. Best-effort.
func (s *segment[T]) empty() bool {
	return s.head.LoadAcquire() == s.tail.LoadAcquire()
}

// linkEnqueue allocates a successor segment carrying elem as its first
// element and publishes it through next (producer only, called when this
// segment is full).
//
// The element is placed and the successor's tail index set before the
// next.Store, so the link publishes a fully formed segment in one shot:
// a fresh segment is never observed partially initialized, and never
// full. Must be called at most once per segment.
func (s *segment[T]) linkEnqueue(elem *T) *segment[T] {
	n := &segment[T]{}
	n.buf[0] = *elem
	n.tail.StoreRelaxed(1) // private until next.Store publishes it
	s.next.Store(n)
	return n
}

// clear discards resident elements in ring order, returning the count.
// Exclusive access only.
func (s *segment[T]) clear() int {
	head := s.head.LoadAcquire()
	tail := s.tail.LoadAcquire()

	var zero T
	n := 0
	for i := head; i != tail; i = (i + 1) & segmentMask {
		s.buf[i] = zero
		n++
	}
	s.head.StoreRelaxed(tail)
	return n
}
