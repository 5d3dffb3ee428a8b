// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spsc

import "unsafe"

// Options configures bounded channel creation.
type Options struct {
	// Runtime enforcement of the SPSC contract on the endpoints
	guarded bool

	// Capacity (exact slot count, one slot reserved)
	capacity int
}

// Builder creates bounded channels with fluent configuration.
//
// The direct constructors ([Bounded], [NewRing]) are recommended for most
// cases; the builder exists for call sites that want to opt the endpoints
// into runtime contract checking.
//
// Example:
//
//	// Plain bounded channel
//	tx, rx := spsc.Split[Event](spsc.New(1024))
//
//	// Endpoints that panic on detected concurrent misuse
//	tx, rx := spsc.Split[Event](spsc.New(1024).Guarded())
type Builder struct {
	opts Options
}

// New creates a bounded channel builder with the given capacity.
//
// Capacity is the exact slot count — no rounding — of which capacity-1
// slots are usable (one is reserved to distinguish full from empty).
//
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("spsc: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Guarded opts the endpoints into runtime SPSC-contract checking: every
// Send and Recv runs a reentry guard that panics when two goroutines are
// detected inside the same endpoint at once.
//
// Trade-off: one CAS per operation on the guarded endpoint. Unguarded
// endpoints (the default) leave the single-producer single-consumer
// discipline entirely to the caller, like [Bounded] does.
//
// Unbounded endpoints are always guarded and ignore this option.
func (b *Builder) Guarded() *Builder {
	b.opts.guarded = true
	return b
}

// Split builds the bounded channel: one shared ring buffer and its two
// endpoints, guarded if the builder says so.
func Split[T any](b *Builder) (*Sender[T], *Receiver[T]) {
	q := NewRing[T](b.opts.capacity)
	tx := &Sender[T]{ring: q}
	tx.guard.armed = b.opts.guarded
	rx := &Receiver[T]{ring: q}
	rx.guard.armed = b.opts.guarded
	return tx, rx
}

// Build creates the bare bounded queue without endpoint facades.
// Guarded() does not apply at the queue level and is ignored here.
func Build[T any](b *Builder) *Ring[T] {
	return NewRing[T](b.opts.capacity)
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padPtr is padding to fill cache line after pointer-sized field.
type padPtr [64 - ptrSize]byte
