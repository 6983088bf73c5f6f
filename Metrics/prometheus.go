package Metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystemPool = "pool"
	subsystemMap  = "unordered_map"
)

type PoolPromCollector struct {
	countSlabsCarved   prometheus.Counter
	gaugeChunksTotal   prometheus.Gauge
	gaugeChunksInUse   prometheus.Gauge
	countAllocFailures prometheus.Counter
}

func NewPoolCollector(nameSpace string, poolName string, registrar prometheus.Registerer) *PoolPromCollector {
	countSlabsCarved := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemPool,
		Name:      poolName + "_" + "slabs_carved_total",
		Help:      "total number of slabs sliced into chunks",
	})

	gaugeChunksTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: nameSpace,
		Subsystem: subsystemPool,
		Name:      poolName + "_" + "chunks",
		Help:      "number of chunks owned by the pool, free or not",
	})

	gaugeChunksInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: nameSpace,
		Subsystem: subsystemPool,
		Name:      poolName + "_" + "chunks_in_use",
		Help:      "number of chunks currently handed out",
	})

	countAllocFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemPool,
		Name:      poolName + "_" + "alloc_failures_total",
		Help:      "total number of allocations refused because the pool reached its slab limit",
	})

	registrar.MustRegister(
		countSlabsCarved,
		gaugeChunksTotal,
		gaugeChunksInUse,
		countAllocFailures)

	return &PoolPromCollector{
		countSlabsCarved:   countSlabsCarved,
		gaugeChunksTotal:   gaugeChunksTotal,
		gaugeChunksInUse:   gaugeChunksInUse,
		countAllocFailures: countAllocFailures,
	}
}

func (p *PoolPromCollector) OnSlabCarved(chunks int) {
	p.countSlabsCarved.Inc()
	p.gaugeChunksTotal.Add(float64(chunks))
}

func (p *PoolPromCollector) OnChunkAllocated() {
	p.gaugeChunksInUse.Inc()
}

func (p *PoolPromCollector) OnChunkFreed() {
	p.gaugeChunksInUse.Dec()
}

func (p *PoolPromCollector) OnAllocFailure() {
	p.countAllocFailures.Inc()
}

type MapPromCollector struct {
	countRehash        prometheus.Counter
	gaugeCapacity      prometheus.Gauge
	countInsertSuccess prometheus.Counter
	countInsertDup     prometheus.Counter
	countErase         prometheus.Counter
	countLookupHit     prometheus.Counter
	countLookupMiss    prometheus.Counter
}

func NewMapCollector(nameSpace string, mapName string, registrar prometheus.Registerer) *MapPromCollector {
	countRehash := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "rehash_total",
		Help:      "total number of bucket array rebuilds",
	})

	gaugeCapacity := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "capacity",
		Help:      "number of buckets after the latest rehash",
	})

	countInsertSuccess := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "successful_insert_count_total",
		Help:      "total number of inserts that added a new key",
	})

	countInsertDup := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "duplicate_insert_count_total",
		Help:      "total number of inserts dropped because the key already existed",
	})

	countErase := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "erase_count_total",
		Help:      "total number of erased entries",
	})

	countLookupHit := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "successful_lookup_count_total",
		Help:      "total number of lookups that found their key",
	})

	countLookupMiss := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: nameSpace,
		Subsystem: subsystemMap,
		Name:      mapName + "_" + "unsuccessful_lookup_count_total",
		Help:      "total number of lookups that did not find their key",
	})

	registrar.MustRegister(
		// table shape
		countRehash,
		gaugeCapacity,

		// write
		countInsertSuccess,
		countInsertDup,
		countErase,

		// read
		countLookupHit,
		countLookupMiss)

	return &MapPromCollector{
		countRehash:        countRehash,
		gaugeCapacity:      gaugeCapacity,
		countInsertSuccess: countInsertSuccess,
		countInsertDup:     countInsertDup,
		countErase:         countErase,
		countLookupHit:     countLookupHit,
		countLookupMiss:    countLookupMiss,
	}
}

func (m *MapPromCollector) OnRehash(_, newCapacity, _ int) {
	m.countRehash.Inc()
	m.gaugeCapacity.Set(float64(newCapacity))
}

func (m *MapPromCollector) OnInsert(inserted bool) {
	if inserted {
		m.countInsertSuccess.Inc()
	} else {
		m.countInsertDup.Inc()
	}
}

func (m *MapPromCollector) OnErase() {
	m.countErase.Inc()
}

func (m *MapPromCollector) OnLookup(found bool) {
	if found {
		m.countLookupHit.Inc()
	} else {
		m.countLookupMiss.Inc()
	}
}

var (
	_ PoolCollector = (*PoolPromCollector)(nil)
	_ MapCollector  = (*MapPromCollector)(nil)
)
