// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Lock-free algorithm tests excluded from race detection.
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established through atomic memory orderings (acquire-release semantics).
//
// These tests exercise the SPSC queues, which protect their plain slot
// memory with acquire/release pairs on the separate index atomics. The
// algorithms are correct, but the race detector reports false positives
// because it cannot track the synchronization provided by atomic
// operations on separate variables.

package spsc_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spsc"
)

// =============================================================================
// Threaded FIFO Tests (1 producer, 1 consumer)
// =============================================================================

// TestRingThreadedFIFO streams 100k values through a small ring with busy
// retry on both sides; the consumer checks strict order.
func TestRingThreadedFIFO(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const count = 100_000
	q := spsc.NewRing[int](64)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := range count {
			v := i
			for q.Enqueue(&v) != nil {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()

	backoff := iox.Backoff{}
	for want := range count {
		for {
			got, err := q.Dequeue()
			if err == nil {
				if got != want {
					t.Fatalf("Dequeue: got %d, want %d", got, want)
				}
				backoff.Reset()
				break
			}
			backoff.Wait()
		}
	}
	wg.Wait()

	if _, err := q.Dequeue(); err == nil {
		t.Fatal("Dequeue after drain: got value, want ErrWouldBlock")
	}
}

// TestBoundedChannelThreadedSum streams values through the channel facade
// and verifies the received sum, the classic transfer check.
func TestBoundedChannelThreadedSum(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const count = 100_000
	tx, rx := spsc.Bounded[int](128)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		for i := 1; i <= count; i++ {
			v := i
			for tx.Send(&v) != nil {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()

	sum := 0
	backoff := iox.Backoff{}
	for received := 0; received < count; {
		v, err := rx.Recv()
		if err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		sum += v
		received++
	}
	wg.Wait()

	const want = count * (count + 1) / 2
	if sum != want {
		t.Fatalf("sum: got %d, want %d", sum, want)
	}
}

// TestUnboundedThreadedFIFO runs the cross-segment handoff concurrently:
// the producer sends several segments' worth while the consumer busy
// retries, expecting the exact sequence; the final Recv after the producer
// joins finds the channel empty.
func TestUnboundedThreadedFIFO(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const count = 3 * spsc.SegmentSize
	tx, rx := spsc.Unbounded[int]()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range count {
			v := i
			tx.Send(&v)
		}
	}()

	backoff := iox.Backoff{}
	for want := range count {
		for {
			got, err := rx.Recv()
			if err == nil {
				if got != want {
					t.Fatalf("Recv: got %d, want %d", got, want)
				}
				backoff.Reset()
				break
			}
			backoff.Wait()
		}
	}
	wg.Wait()

	if _, err := rx.Recv(); err == nil {
		t.Fatal("Recv after producer joined and queue drained: got value, want ErrWouldBlock")
	}
}

// TestChainThreadedBacklog lets the producer run far ahead so the chain
// grows and segments are retired mid-stream, then checks nothing was lost
// or reordered across the links.
func TestChainThreadedBacklog(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const count = 10 * spsc.SegmentSize
	q := spsc.NewChain[int]()

	var produced atomix.Int64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range count {
			v := i
			q.Enqueue(&v)
			produced.Add(1)
		}
	}()

	backoff := iox.Backoff{}
	for want := range count {
		for {
			got, err := q.Dequeue()
			if err == nil {
				if got != want {
					t.Fatalf("Dequeue: got %d, want %d (produced so far %d)",
						got, want, produced.Load())
				}
				backoff.Reset()
				break
			}
			backoff.Wait()
		}
	}
	wg.Wait()

	if !q.Empty() {
		t.Fatal("Empty after drain: got false, want true")
	}
}

// =============================================================================
// Contract Guard Under Misuse
// =============================================================================

// TestUnboundedGuardUnderMisuse deliberately violates the single-producer
// contract with two sending goroutines. The guard serializes or rejects
// the overlapping calls, so every Send that returned normally must be
// received exactly once; detected overlaps panic and are swallowed here.
// Whether any overlap is caught depends on scheduling, so the test only
// reports the count.
func TestUnboundedGuardUnderMisuse(t *testing.T) {
	if spsc.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const perProducer = 10_000
	tx, rx := spsc.Unbounded[int]()

	var sent, caught atomix.Int64
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				func() {
					defer func() {
						if recover() != nil {
							caught.Add(1)
						}
					}()
					v := i
					tx.Send(&v)
					sent.Add(1)
				}()
			}
		}()
	}
	wg.Wait()

	received := int64(0)
	for {
		if _, err := rx.Recv(); err != nil {
			break
		}
		received++
	}
	if received != sent.Load() {
		t.Fatalf("received %d elements, want %d (caught %d overlaps)",
			received, sent.Load(), caught.Load())
	}
	t.Logf("guard caught %d overlapping sends out of %d attempts", caught.Load(), 2*perProducer)
}
