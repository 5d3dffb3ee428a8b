// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import (
	"code.hybscloud.com/atomix"
)

// guard is a per-endpoint reentry detector for the SPSC contract.
//
// When armed, every operation claims the guard with a CAS on entry and
// releases it on exit. Two goroutines inside the same endpoint at once is
// a contract violation; the loser of the CAS panics rather than silently
// corrupting the queue. The zero guard is unarmed and costs one branch.
//
// The CAS also serializes the two offenders, so a caught violation leaves
// the queue itself intact.
type guard struct {
	armed bool
	busy  atomix.Uint64
}

func (g *guard) enter(op string) {
	if !g.armed {
		return
	}
	if !g.busy.CompareAndSwapAcqRel(0, 1) {
		panic("spsc: concurrent " + op + " violates the single-producer single-consumer contract")
	}
}

func (g *guard) leave() {
	if !g.armed {
		return
	}
	g.busy.StoreRelease(0)
}

// Sender is the producing endpoint of a bounded channel.
//
// Exactly one goroutine may call Send at a time. The handle itself is an
// ordinary pointer and may be passed around; keeping all Send calls on a
// single goroutine is the caller's obligation. Construct via [Split] with
// [Builder.Guarded] to have violations detected at runtime instead.
type Sender[T any] struct {
	ring  *Ring[T]
	guard guard
}

// Receiver is the consuming endpoint of a bounded channel.
//
// Exactly one goroutine may call Recv at a time; the same obligation and
// Guarded escape hatch as [Sender].
type Receiver[T any] struct {
	ring  *Ring[T]
	guard guard
}

// Bounded creates a bounded SPSC channel over one shared ring buffer of
// exactly capacity slots (capacity-1 usable) and returns its two
// endpoints. Panics if capacity < 2.
//
// The queue lives as long as either endpoint does; once both are dropped
// it is reclaimed, contents included.
func Bounded[T any](capacity int) (*Sender[T], *Receiver[T]) {
	q := NewRing[T](capacity)
	return &Sender[T]{ring: q}, &Receiver[T]{ring: q}
}

// Send adds an element to the channel (producer only, non-blocking).
// Returns ErrWouldBlock if the channel is full; *elem is untouched so the
// caller may retry with backoff or drop the element.
func (s *Sender[T]) Send(elem *T) error {
	s.guard.enter("Send")
	err := s.ring.Enqueue(elem)
	s.guard.leave()
	return err
}

// Cap returns the channel's slot count; at most Cap()-1 elements buffer.
func (s *Sender[T]) Cap() int { return s.ring.Cap() }

// Full reports whether the channel is full. Best-effort snapshot.
func (s *Sender[T]) Full() bool { return s.ring.Full() }

// Empty reports whether the channel is empty. Best-effort snapshot.
func (s *Sender[T]) Empty() bool { return s.ring.Empty() }

// Recv removes and returns an element (consumer only, non-blocking).
// Returns (zero-value, ErrWouldBlock) if the channel is empty.
func (r *Receiver[T]) Recv() (T, error) {
	r.guard.enter("Recv")
	elem, err := r.ring.Dequeue()
	r.guard.leave()
	return elem, err
}

// Cap returns the channel's slot count; at most Cap()-1 elements buffer.
func (r *Receiver[T]) Cap() int { return r.ring.Cap() }

// Full reports whether the channel is full. Best-effort snapshot.
func (r *Receiver[T]) Full() bool { return r.ring.Full() }

// Empty reports whether the channel is empty. Best-effort snapshot.
func (r *Receiver[T]) Empty() bool { return r.ring.Empty() }
