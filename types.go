// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

// Queue is the combined producer-consumer interface for an SPSC queue.
// Both [Ring] and [Chain] satisfy it, so call sites and test harnesses
// can treat the bounded and unbounded queues uniformly.
//
// The interface intentionally excludes length — accurate counts in
// lock-free algorithms require expensive cross-core synchronization — and
// capacity, which the unbounded Chain does not have. Track counts in
// application logic when needed.
//
// Example:
//
//	var q spsc.Queue[int] = spsc.NewRing[int](1024)
//
//	// Enqueue
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full queue (bounded only)
//	}
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
}

// Producer is the interface for enqueueing elements.
//
// Producer provides non-blocking enqueue operations. The element is passed
// by pointer to avoid copying large structs. The queue stores a copy of
// the pointed-to value, so the original can be modified after Enqueue returns.
//
// Exactly one goroutine may act as the producer of any queue in this
// package.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// The element is copied into the queue's internal buffer.
	// Returns nil on success, ErrWouldBlock if the queue is full.
	// Chain never returns an error; its Enqueue always succeeds.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Consumer provides non-blocking dequeue operations. The element is returned
// by value (copied from the queue's internal buffer). The original slot is
// cleared to allow garbage collection of referenced objects.
//
// Exactly one goroutine may act as the consumer of any queue in this
// package.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns the dequeued element on success.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}
