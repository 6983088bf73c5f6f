package Pools

import (
	"sync"
	"sync/atomic"
)

// Heap is the fallback Allocator: every chunk is its own runtime allocation, and freed chunks are left to the garbage collector. Only the index slots are recycled.
type Heap[E any] struct {
	mu    sync.Mutex
	slots atomic.Pointer[[]*E]
	free  []Index
	inUse int
}

func NewHeap[E any]() *Heap[E] {
	h := new(Heap[E])
	h.slots.Store(new([]*E))
	return h
}

func (h *Heap[E]) Alloc() (Index, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inUse++
	if n := len(h.free); n > 0 {
		i := h.free[n-1]
		h.free = h.free[:n-1]
		(*h.slots.Load())[i] = new(E)
		return i, nil
	}
	slots := *h.slots.Load()
	if Index(len(slots)) > MaxIndex {
		h.inUse--
		return Nil, ErrOutOfMemory
	}
	grown := append(slots, new(E))
	h.slots.Store(&grown)
	return Index(len(grown) - 1), nil
}

func (h *Heap[E]) Free(i Index) {
	h.mu.Lock()
	defer h.mu.Unlock()
	slots := *h.slots.Load()
	if int(i) >= len(slots) || slots[i] == nil {
		panic(InvalidFreeError{i})
	}
	slots[i] = nil
	h.free = append(h.free, i)
	h.inUse--
}

func (h *Heap[E]) At(i Index) *E {
	return (*h.slots.Load())[i]
}

func (h *Heap[E]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inUse
}
