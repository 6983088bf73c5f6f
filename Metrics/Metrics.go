// Package Metrics defines the hooks pools and maps report to, a no-op implementation, and Prometheus backed collectors.
package Metrics

// PoolCollector receives allocator events.
type PoolCollector interface {
	// OnSlabCarved is called when a pool runs dry and slices a fresh slab into chunks.
	OnSlabCarved(chunks int)
	OnChunkAllocated()
	OnChunkFreed()
	// OnAllocFailure is called when a slab was needed but the pool is not allowed to grow.
	OnAllocFailure()
}

// MapCollector receives hash map events.
type MapCollector interface {
	// OnRehash is called after the bucket array is rebuilt.
	OnRehash(oldCapacity, newCapacity, size int)
	// OnInsert is called for every insert attempt; inserted is false for a duplicate key.
	OnInsert(inserted bool)
	OnErase()
	OnLookup(found bool)
}

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (nc *NoopCollector) OnSlabCarved(int) {}
func (nc *NoopCollector) OnChunkAllocated() {}
func (nc *NoopCollector) OnChunkFreed() {}
func (nc *NoopCollector) OnAllocFailure() {}
func (nc *NoopCollector) OnRehash(int, int, int) {}
func (nc *NoopCollector) OnInsert(bool) {}
func (nc *NoopCollector) OnErase() {}
func (nc *NoopCollector) OnLookup(bool) {}

var (
	_ PoolCollector = (*NoopCollector)(nil)
	_ MapCollector  = (*NoopCollector)(nil)
)
