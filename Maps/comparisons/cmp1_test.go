package comparisons

import (
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	godsmap "github.com/emirpasic/gods/maps/hashmap"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	"github.com/puzpuzpuz/xsync/v3"

	Go_Containers "github.com/g-m-twostay/go-containers"
	"github.com/g-m-twostay/go-containers/Lists"
	"github.com/g-m-twostay/go-containers/Maps/UnorderedMap"
	"github.com/g-m-twostay/go-containers/Pools"
)

const benchmarkItemCount = 1024

var sideEff bool

// Lookups of present and absent keys on maps filled once. None of the maps is written during the benchmark, so the concurrent maps run single threaded too.

func setupUnorderedMap(b *testing.B, opts ...UnorderedMap.Option) *UnorderedMap.UnorderedMap[uintptr, uintptr] {
	b.Helper()
	m := UnorderedMap.NewComparable[uintptr, uintptr](Go_Containers.IdentityHash[uintptr], opts...)
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		if _, _, err := m.Insert(i, i); err != nil {
			b.Fatal(err)
		}
	}
	return m
}

func setupHashMap(b *testing.B) *hashmap.Map[uintptr, uintptr] {
	b.Helper()
	m := hashmap.New[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupHaxMap(b *testing.B) *haxmap.Map[uintptr, uintptr] {
	b.Helper()
	m := haxmap.New[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupXSyncMap(b *testing.B) *xsync.MapOf[uintptr, uintptr] {
	b.Helper()
	m := xsync.NewMapOfWithHasher[uintptr, uintptr](func(v uintptr, _ uint64) uint64 { return uint64(v) })
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Store(i, i)
	}
	return m
}

func setupGodsMap(b *testing.B) *godsmap.Map {
	b.Helper()
	m := godsmap.New()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Put(i, i)
	}
	return m
}

type item uintptr

func (x item) Less(than llrb.Item) bool {
	return x < than.(item)
}

func setupLLRB(b *testing.B) *llrb.LLRB {
	b.Helper()
	m := llrb.New()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.ReplaceOrInsert(item(i))
	}
	return m
}

func setupBTree(b *testing.B) *btree.BTreeG[uintptr] {
	b.Helper()
	m := btree.NewOrderedG[uintptr](32)
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.ReplaceOrInsert(i)
	}
	return m
}

func Benchmark1ReadUnorderedMapPool(b *testing.B) {
	m := setupUnorderedMap(b, UnorderedMap.WithAllocator[uintptr, uintptr](UnorderedMap.NewPool[uintptr, uintptr]()))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Get(i)
		}
	}
}

func Benchmark1ReadUnorderedMapHeap(b *testing.B) {
	m := setupUnorderedMap(b, UnorderedMap.WithAllocator[uintptr, uintptr](Pools.NewHeap[Lists.Node[UnorderedMap.Entry[uintptr, uintptr]]]()))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Get(i)
		}
	}
}

func Benchmark1ReadUnorderedMapLoad4(b *testing.B) {
	m := setupUnorderedMap(b, UnorderedMap.WithMaxLoadFactor(4), UnorderedMap.WithCapacity(benchmarkItemCount/4))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Get(i)
		}
	}
}

func Benchmark1ReadBuiltinMap(b *testing.B) {
	m := make(map[uintptr]uintptr, benchmarkItemCount)
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m[i] = i
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m[i]
		}
	}
}

func Benchmark1ReadHashMap(b *testing.B) {
	m := setupHashMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Get(i)
		}
	}
}

func Benchmark1ReadHaxMap(b *testing.B) {
	m := setupHaxMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Get(i)
		}
	}
}

func Benchmark1ReadXSyncMap(b *testing.B) {
	m := setupXSyncMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Load(i)
		}
	}
}

func Benchmark1ReadGodsMap(b *testing.B) {
	m := setupGodsMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			_, sideEff = m.Get(i)
		}
	}
}

func Benchmark1ReadLLRB(b *testing.B) {
	m := setupLLRB(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			sideEff = m.Has(item(i))
		}
	}
}

func Benchmark1ReadBTree(b *testing.B) {
	m := setupBTree(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount<<1; i++ {
			sideEff = m.Has(i)
		}
	}
}
