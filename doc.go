// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spsc provides lock-free single-producer single-consumer channels.
//
// The package offers two queue primitives and a thin channel facade over
// each:
//
//   - Ring: bounded ring buffer, fixed pre-allocated capacity, zero
//     allocation on the hot path
//   - Chain: unbounded queue growing by linked fixed-size segments,
//     amortized O(1) allocation
//   - Bounded / Unbounded: channel factories splitting one shared queue
//     into a Sender and a Receiver endpoint
//
// Exactly one goroutine produces and exactly one consumes. Within that
// contract every operation is lock-free, non-blocking, and bounded-step:
// it returns immediately with a value, a success, or [ErrWouldBlock].
// Delivery is strictly FIFO.
//
// # Quick Start
//
// Queue level:
//
//	q := spsc.NewRing[Event](1024)  // bounded, 1023 usable slots
//	u := spsc.NewChain[Event]()     // unbounded
//
//	v := Event{...}
//	err := q.Enqueue(&v)   // ErrWouldBlock when full
//	e, err := q.Dequeue()  // ErrWouldBlock when empty
//
// Channel level:
//
//	tx, rx := spsc.Bounded[Event](1024)
//	err := tx.Send(&v)
//	e, err := rx.Recv()
//
//	utx, urx := spsc.Unbounded[Event]()
//	utx.Send(&v)           // never fails
//	e, err := urx.Recv()
//
// # Common Patterns
//
// Pipeline Stage (bounded, backpressure by retry):
//
//	q := spsc.NewRing[Data](1024)
//
//	go func() { // Producer (Stage 1)
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.Enqueue(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    backoff := iox.Backoff{}
//	    for {
//	        data, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(data)
//	    }
//	}()
//
// Burst Absorber (unbounded, producer never stalls):
//
//	tx, rx := spsc.Unbounded[Sample]()
//
//	go func() { // Producer: hardware poll loop, must not block
//	    for s := range samples {
//	        tx.Send(&s)
//	    }
//	}()
//
//	go func() { // Consumer: drains at its own pace
//	    backoff := iox.Backoff{}
//	    for {
//	        s, err := rx.Recv()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        record(s)
//	    }
//	}()
//
// # Capacity Semantics
//
// Ring capacity is the exact configured slot count — it is not rounded to
// a power of 2. One slot is permanently reserved to distinguish a full
// ring from an empty one, so a Ring of capacity n buffers at most n-1
// elements:
//
//	q := spsc.NewRing[int](2)     // holds 1 element
//	q := spsc.NewRing[int](1024)  // holds 1023 elements
//
// Minimum capacity is 2. Panic if capacity < 2.
//
// Chain has no capacity. Its segments are [SegmentSize]-slot rings with
// the same reserved-slot rule; a consumer that keeps pace wraps inside a
// single segment and the steady state allocates nothing. Length is
// intentionally not provided on either queue because accurate counts in
// lock-free algorithms require expensive cross-core synchronization;
// Empty and Full are best-effort snapshots only.
//
// # Error Handling
//
// Operations return [ErrWouldBlock] when they cannot proceed: the bounded
// queue is full, or either queue is empty. This error is sourced from
// [code.hybscloud.com/iox] for ecosystem consistency. A failed Enqueue or
// Send performs no mutation — the caller still owns the unmodified value
// and may retry, drop, or escalate:
//
//	// Retry loop with backoff
//	backoff := iox.Backoff{}
//	for {
//	    err := tx.Send(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !spsc.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	spsc.IsWouldBlock(err)  // true if queue full/empty
//	spsc.IsSemantic(err)    // true if control flow signal
//	spsc.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Allocation failure during unbounded growth is fatal (the Go runtime
// aborts); a lock-free structure has no safe rollback path mid-link.
//
// # The SPSC Contract
//
// At most one goroutine may call Enqueue/Send and at most one may call
// Dequeue/Recv on a given queue, concurrently. Violating this causes
// undefined behavior including data corruption. Enforcement differs by
// variant:
//
//   - Bounded endpoints are plain shareable handles; the discipline is a
//     documented caller obligation. Opt into runtime checking with
//     spsc.Split[T](spsc.New(n).Guarded()).
//   - Unbounded endpoints are single-instance and non-duplicable: value
//     copies are flagged by go vet, and every call runs a reentry guard
//     that panics — it does not fail silently — when two goroutines are
//     caught inside the same endpoint.
//
// Dropping an endpoint is always safe; the shared queue and its contents
// are reclaimed once both endpoints are gone. Clear is available on the
// queues for eager teardown.
//
// # Memory Ordering
//
// The producer and consumer each own one index of a queue. Every hot-path
// operation loads its own index relaxed, the far index with acquire, and
// publishes its own index with release — the minimal pairing that makes a
// written element visible to the consumer before the index that announces
// it, and a freed slot visible to the producer before it is overwritten.
// No sequentially consistent ordering is used on the index path. The
// unbounded segment links are off the hot path and use GC-traced stdlib
// atomic pointers, whose ordering is a superset.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established through atomic memory orderings on separate variables. The
// queues here protect plain slot memory with acquire/release pairs on the
// index atomics; the algorithms are correct, but the detector reports
// false positives on the slot accesses. Tests incompatible with race
// detection are excluded via //go:build !race and skip via [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions in benchmarks.
package spsc
