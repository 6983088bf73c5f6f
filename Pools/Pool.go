package Pools

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	Go_Containers "github.com/g-m-twostay/go-containers"
	"github.com/g-m-twostay/go-containers/Metrics"
	"github.com/rs/zerolog"
)

// DefaultSlabLen is the number of chunks carved per slab when WithSlabLen isn't given.
const DefaultSlabLen = 64

type config struct {
	slabLen, maxSlabs int
	log               zerolog.Logger
	metrics           Metrics.PoolCollector
}

type Option func(*config)

// WithSlabLen sets how many chunks one slab is sliced into.
func WithSlabLen(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.slabLen = n
		}
	}
}

// WithMaxSlabs bounds the number of slabs the pool may own; 0 means unbounded. Alloc fails with ErrOutOfMemory once the bound is hit and no chunk is free.
func WithMaxSlabs(n int) Option {
	return func(c *config) {
		c.maxSlabs = n
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

func WithCollector(m Metrics.PoolCollector) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// Pool is a free-list allocator carving chunks of E out of slabs of fixed length.
type Pool[E any] struct {
	mu    sync.Mutex
	slabs atomic.Pointer[[][]E] //published after each carve; slabs never move once carved.
	free  []Index               //stack of free chunks, top is the next one handed out.
	live  Go_Containers.BitArray
	inUse int
	config
}

func New[E any](opts ...Option) *Pool[E] {
	p := &Pool[E]{config: config{slabLen: DefaultSlabLen, log: zerolog.Nop(), metrics: Metrics.NewNoopCollector()}}
	for _, o := range opts {
		o(&p.config)
	}
	var e E
	p.log = p.log.With().Str("component", "pool").Uint64("chunk_size", uint64(unsafe.Sizeof(e))).Logger()
	p.slabs.Store(new([][]E))
	return p
}

// carve slices a new slab and pushes all of its chunks on the free list. p.mu must be held.
func (p *Pool[E]) carve() error {
	slabs := *p.slabs.Load()
	if p.maxSlabs > 0 && len(slabs) >= p.maxSlabs {
		return fmt.Errorf("%w: %d slabs of %d chunks in use", ErrOutOfMemory, len(slabs), p.slabLen)
	}
	base := len(slabs) * p.slabLen
	if uint64(base)+uint64(p.slabLen) > uint64(MaxIndex) {
		return fmt.Errorf("%w: index space exhausted", ErrOutOfMemory)
	}
	//appending past len is invisible to readers holding the old header.
	grown := append(slabs, make([]E, p.slabLen))
	p.slabs.Store(&grown)
	p.live.Grow(base + p.slabLen)
	for i := p.slabLen - 1; i >= 0; i-- { //lowest index ends up on top.
		p.free = append(p.free, Index(base+i))
	}
	p.metrics.OnSlabCarved(p.slabLen)
	p.log.Debug().Int("slab", len(grown)-1).Int("chunks", p.slabLen).Msg("carved slab")
	return nil
}

func (p *Pool[E]) Alloc() (Index, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		if err := p.carve(); err != nil {
			p.metrics.OnAllocFailure()
			return Nil, err
		}
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.live.Up(int(i))
	p.inUse++
	p.metrics.OnChunkAllocated()
	return i, nil
}

// Free zeroes chunk i and puts it back on the free list. It panics with InvalidFreeError if i isn't allocated.
func (p *Pool[E]) Free(i Index) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(i) >= p.live.Len() || !p.live.Get(int(i)) {
		panic(InvalidFreeError{i})
	}
	p.live.Down(int(i))
	*p.At(i) = *new(E)
	p.free = append(p.free, i)
	p.inUse--
	p.metrics.OnChunkFreed()
}

func (p *Pool[E]) At(i Index) *E {
	slabs := *p.slabs.Load()
	return &slabs[int(i)/p.slabLen][int(i)%p.slabLen]
}

func (p *Pool[E]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inUse
}

// Stats is a snapshot of a pool's bookkeeping.
type Stats struct {
	Slabs, Chunks, InUse, Free int
}

func (p *Pool[E]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	slabs := len(*p.slabs.Load())
	return Stats{Slabs: slabs, Chunks: slabs * p.slabLen, InUse: p.inUse, Free: len(p.free)}
}

func (s Stats) String() string {
	return fmt.Sprintf("slabs: %d; chunks: %d; in use: %d; free: %d", s.Slabs, s.Chunks, s.InUse, s.Free)
}
