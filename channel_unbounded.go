// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// noCopy makes `go vet -copylocks` flag value copies of a type that
// embeds it. Endpoints of the unbounded channel are single-instance by
// contract; copying one would manufacture a second producer or consumer.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// UnboundedSender is the producing endpoint of an unbounded channel.
//
// At most one UnboundedSender exists per channel and it must not be
// duplicated: the struct carries a noCopy marker (caught by go vet) and
// every Send runs a runtime reentry guard that panics when two goroutines
// are caught sending at once. Move the pointer between goroutines freely;
// never use it from two at the same time.
type UnboundedSender[T any] struct {
	_     noCopy
	chain *Chain[T]
	guard guard
}

// UnboundedReceiver is the consuming endpoint of an unbounded channel.
// Single-instance and non-duplicable, same contract as [UnboundedSender].
type UnboundedReceiver[T any] struct {
	_     noCopy
	chain *Chain[T]
	guard guard
}

// Unbounded creates an unbounded SPSC channel and returns its two
// endpoints: exactly one sender and one receiver sharing one segment
// chain. This factory is the only way to obtain either endpoint.
//
// The queue lives as long as either endpoint does; once both are dropped
// it is reclaimed, contents included.
func Unbounded[T any]() (*UnboundedSender[T], *UnboundedReceiver[T]) {
	q := NewChain[T]()
	tx := &UnboundedSender[T]{chain: q}
	tx.guard.armed = true
	rx := &UnboundedReceiver[T]{chain: q}
	rx.guard.armed = true
	return tx, rx
}

// Send adds an element to the channel (producer only, non-blocking).
// Send never fails: the channel grows as needed and the element is always
// accepted and eventually visible to the receiver.
//
// Panics if a concurrent Send from another goroutine is detected.
func (s *UnboundedSender[T]) Send(elem *T) {
	s.guard.enter("Send")
	_ = s.chain.Enqueue(elem)
	s.guard.leave()
}

// Recv removes and returns an element (consumer only, non-blocking).
// Returns (zero-value, ErrWouldBlock) if the channel is empty.
//
// Panics if a concurrent Recv from another goroutine is detected.
func (r *UnboundedReceiver[T]) Recv() (T, error) {
	r.guard.enter("Recv")
	elem, err := r.chain.Dequeue()
	r.guard.leave()
	return elem, err
}

// Empty reports whether the channel is empty. Best-effort snapshot.
func (r *UnboundedReceiver[T]) Empty() bool { return r.chain.Empty() }
