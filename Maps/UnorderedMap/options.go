package UnorderedMap

import (
	"fmt"

	"github.com/g-m-twostay/go-containers/Lists"
	"github.com/g-m-twostay/go-containers/Metrics"
	"github.com/g-m-twostay/go-containers/Pools"
	"github.com/rs/zerolog"
)

const (
	DefaultCapacity      = 100
	DefaultMaxLoadFactor = 1.0
)

type config struct {
	capacity int
	maxLoad  float64
	alloc    any //Pools.Allocator[Lists.Node[Entry[K, V]]], checked by New.
	log      zerolog.Logger
	metrics  Metrics.MapCollector
}

type Option func(*config)

// WithCapacity sets the initial number of buckets.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

func WithMaxLoadFactor(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.maxLoad = f
		}
	}
}

// WithAllocator makes the map draw its nodes from a. Maps sharing an allocator must be used from one goroutine at a time each, the allocator itself is safe to share.
func WithAllocator[K, V any](a Pools.Allocator[Lists.Node[Entry[K, V]]]) Option {
	return func(c *config) {
		c.alloc = a
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

func WithCollector(m Metrics.MapCollector) Option {
	return func(c *config) {
		c.metrics = m
	}
}

func newConfig(opts []Option) config {
	c := config{capacity: DefaultCapacity, maxLoad: DefaultMaxLoadFactor, log: zerolog.Nop(), metrics: Metrics.NewNoopCollector()}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func allocatorOf[K, V any](c *config) Pools.Allocator[Lists.Node[Entry[K, V]]] {
	if c.alloc == nil {
		return nil
	}
	a, ok := c.alloc.(Pools.Allocator[Lists.Node[Entry[K, V]]])
	if !ok {
		panic(fmt.Sprintf("UnorderedMap: allocator %T doesn't serve %T", c.alloc, Entry[K, V]{}))
	}
	return a
}

// NewPool returns a pool typed for the nodes of an UnorderedMap[K, V], to be passed to WithAllocator by several maps.
func NewPool[K, V any](opts ...Pools.Option) *Pools.Pool[Lists.Node[Entry[K, V]]] {
	return Pools.New[Lists.Node[Entry[K, V]]](opts...)
}
