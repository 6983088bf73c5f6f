/*
Package Pools implements fixed-chunk free-list allocators for many small objects of one type.

A Pool owns slabs, each sliced into chunks of one element type. Freed chunks go back on the pool's free list and are never returned to the runtime individually; slabs live as long as the pool does. Chunks are referenced by Index instead of by pointer, so structures built on top (see Lists) can link chunks together without holding Go pointers into the slabs.

# Concurrency
A single Pool may be shared by many containers from many goroutines: Alloc and Free are serialized per pool, and At never blocks. What a chunk holds is owned by whoever allocated it and is not synchronized by the pool.

# Registry
For returns a process-wide pool per element type whose size falls into one of SizeClasses; those pools are created on first use and never shrink. Types larger than the biggest class get a Heap, which delegates every allocation to the runtime.
*/
package Pools

import (
	"errors"
	"fmt"
	"math"
)

// Index refers to a chunk handed out by an Allocator.
type Index uint32

// Nil is never returned by a successful Alloc.
const Nil Index = math.MaxUint32

// MaxIndex is the largest Index an allocator may hand out. Values above it are reserved for users of the allocators.
const MaxIndex Index = math.MaxUint32 - 16

// Allocator hands out chunks holding one E each.
type Allocator[E any] interface {
	// Alloc returns a zeroed chunk. The only error is an out of memory condition, wrapping ErrOutOfMemory.
	Alloc() (Index, error)
	// Free returns i to the allocator. i must come from Alloc on the same allocator and must not be used afterwards.
	Free(i Index)
	// At returns the storage of chunk i. The pointer stays valid until i is freed.
	At(i Index) *E
	// Len is the number of chunks currently allocated.
	Len() int
}

var ErrOutOfMemory = errors.New("Pools: out of memory")

// InvalidFreeError is the panic value of Pool.Free when the chunk isn't allocated.
type InvalidFreeError struct {
	Index Index
}

func (e InvalidFreeError) Error() string {
	return fmt.Sprintf("Pools: free of chunk %d which is not allocated", e.Index)
}
