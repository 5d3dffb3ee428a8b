// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"sync/atomic"
)

// Chain is an unbounded single-producer single-consumer queue.
//
// Chain links fixed-size ring-buffer segments into a singly-linked list.
// head points at the segment the consumer drains, tail at the segment the
// producer fills; initially both point at the same single segment. The
// producer appends a new segment only when the current tail segment is
// full, and the consumer unlinks a segment only after it is drained and
// superseded, so the chain head → … → tail is always a valid list of live
// segments and ownership of a segment moves strictly front to back.
//
// Allocation is amortized: a consumer that keeps pace wraps inside the one
// segment and the steady state allocates nothing; only a sustained producer
// lead grows the chain, one allocation per SegmentSize-1 items of backlog.
// Unlinked segments are reclaimed by the GC once the consumer drops them.
//
// Memory: O(resident elements), in SegmentSize-slot steps.
type Chain[T any] struct {
	_    pad
	head atomic.Pointer[segment[T]] // Consumer drains this segment
	_    padPtr
	tail atomic.Pointer[segment[T]] // Producer fills this segment
	_    padPtr
}

// NewChain creates a new unbounded SPSC queue with a single empty segment.
func NewChain[T any]() *Chain[T] {
	c := &Chain[T]{}
	s := &segment[T]{}
	c.head.Store(s)
	c.tail.Store(s)
	return c
}

// Enqueue adds an element to the queue (producer only).
//
// Enqueue never fails: when the tail segment is full a new segment is
// allocated, the element is placed in it, and the segment is linked and
// published. The error return is always nil; it exists so Chain satisfies
// [Producer]. Allocation failure is fatal by Go runtime semantics, which
// matches the contract: a lock-free link has no safe rollback path.
func (c *Chain[T]) Enqueue(elem *T) error {
	s := c.tail.Load()
	if s.enqueue(elem) {
		return nil
	}
	// Tail segment full: grow. The successor is published through
	// s.next first, then through c.tail, so a consumer that sees the
	// new tail also sees the link.
	c.tail.Store(s.linkEnqueue(elem))
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
//
// When the head segment is drained and a successor is linked, Dequeue
// retries the drained segment once more before advancing past it. The
// retry is load-bearing: the producer may have filled the segment between
// the failed pop and the consumer observing the link, and advancing
// straight away would drop those elements.
func (c *Chain[T]) Dequeue() (T, error) {
	s := c.head.Load()
	for {
		if elem, ok := s.dequeue(); ok {
			return elem, nil
		}
		if c.tail.Load() == s {
			// Head segment is also the tail: the whole queue is
			// empty. The segment is retained for reuse in place.
			var zero T
			return zero, ErrWouldBlock
		}
		next := s.next.Load()
		if next == nil {
			// Link not yet visible; treat as empty and let the
			// caller retry.
			var zero T
			return zero, ErrWouldBlock
		}
		// Elements may have landed after the failed pop and before
		// the link was observed. Seeing next orders this load after
		// the producer's final stores into s, so a second miss means
		// s is drained for good.
		if elem, ok := s.dequeue(); ok {
			return elem, nil
		}
		c.head.Store(next)
		s = next
	}
}

// Empty reports whether the queue is empty: the head segment holds nothing
// and no successor exists.
//
// Best-effort snapshot, may be stale under concurrent use.
func (c *Chain[T]) Empty() bool {
	s := c.head.Load()
	return s.empty() && c.tail.Load() == s
}

// Clear discards every resident element, walking the chain from head to
// tail and zeroing each segment's live slots, and returns the number
// discarded. The chain collapses to a single empty segment.
//
// Clear requires exclusive access; it is a teardown operation.
func (c *Chain[T]) Clear() int {
	n := 0
	s := c.head.Load()
	for {
		n += s.clear()
		if c.tail.Load() == s {
			break
		}
		next := s.next.Load()
		if next == nil {
			break
		}
		c.head.Store(next)
		s = next
	}
	return n
}
