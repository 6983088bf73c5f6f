package Pools

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/g-m-twostay/go-containers/Metrics"
)

type chunk struct {
	a, b uint64
}

// TestPool_AllocFree checks that chunks are carved slab by slab, handed out lowest index first, and reused after a free.
func TestPool_AllocFree(t *testing.T) {
	for _, tc := range []struct {
		slabLen, count int
	}{
		{slabLen: 1, count: 10},
		{slabLen: 4, count: 4},
		{slabLen: 4, count: 9},
		{slabLen: 64, count: 1000},
	} {
		t.Run(fmt.Sprintf("%d-slab-%d-chunks", tc.slabLen, tc.count), func(t *testing.T) {
			p := New[chunk](WithSlabLen(tc.slabLen))
			seen := make(map[Index]struct{}, tc.count)
			for i := 0; i < tc.count; i++ {
				idx, err := p.Alloc()
				require.NoError(t, err)
				require.Equal(t, Index(i), idx)
				require.Equal(t, chunk{}, *p.At(idx))
				p.At(idx).a = uint64(i)
				seen[idx] = struct{}{}
			}
			require.Len(t, seen, tc.count)
			slabs := (tc.count + tc.slabLen - 1) / tc.slabLen
			require.Equal(t, Stats{Slabs: slabs, Chunks: slabs * tc.slabLen, InUse: tc.count, Free: slabs*tc.slabLen - tc.count}, p.Stats())

			for i := 0; i < tc.count; i++ {
				require.Equal(t, uint64(i), p.At(Index(i)).a)
			}

			p.Free(Index(tc.count / 2))
			require.Equal(t, tc.count-1, p.Len())
			idx, err := p.Alloc()
			require.NoError(t, err)
			require.Equal(t, Index(tc.count/2), idx, "freed chunk must be reused first")
			require.Equal(t, chunk{}, *p.At(idx), "reused chunk must be zeroed")
			require.Equal(t, slabs, p.Stats().Slabs)
		})
	}
}

func TestPool_PointerStability(t *testing.T) {
	p := New[chunk](WithSlabLen(2))
	first, err := p.Alloc()
	require.NoError(t, err)
	ptr := p.At(first)
	ptr.a = 7
	for i := 0; i < 100; i++ {
		_, err := p.Alloc()
		require.NoError(t, err)
	}
	require.Same(t, ptr, p.At(first))
	require.Equal(t, uint64(7), p.At(first).a)
}

func TestPool_OutOfMemory(t *testing.T) {
	p := New[chunk](WithSlabLen(3), WithMaxSlabs(2))
	for i := 0; i < 6; i++ {
		_, err := p.Alloc()
		require.NoError(t, err)
	}
	_, err := p.Alloc()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOutOfMemory))
	require.Equal(t, 6, p.Len())

	p.Free(4)
	idx, err := p.Alloc()
	require.NoError(t, err)
	require.Equal(t, Index(4), idx)
}

func TestPool_InvalidFree(t *testing.T) {
	p := New[chunk]()
	idx, err := p.Alloc()
	require.NoError(t, err)
	p.Free(idx)
	require.PanicsWithValue(t, InvalidFreeError{idx}, func() { p.Free(idx) })
	require.PanicsWithValue(t, InvalidFreeError{1 << 20}, func() { p.Free(1 << 20) })
}

func TestPool_Concurrent(t *testing.T) {
	const workers, each = 8, 500
	p := New[chunk](WithSlabLen(16))
	got := make([][]Index, workers)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				idx, err := p.Alloc()
				if err != nil {
					t.Error(err)
					return
				}
				p.At(idx).a = uint64(w)
				got[w] = append(got[w], idx)
			}
			for _, idx := range got[w][:each/2] {
				p.Free(idx)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, workers*each/2, p.Len())
	for w := range workers {
		for _, idx := range got[w][each/2:] {
			require.Equal(t, uint64(w), p.At(idx).a)
		}
	}
}

func TestPool_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Metrics.NewPoolCollector("test", "chunk", reg)
	p := New[chunk](WithSlabLen(4), WithMaxSlabs(1), WithCollector(c))
	for i := 0; i < 4; i++ {
		_, err := p.Alloc()
		require.NoError(t, err)
	}
	_, err := p.Alloc()
	require.ErrorIs(t, err, ErrOutOfMemory)
	p.Free(0)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	metrics, err := reg.Gather()
	require.NoError(t, err)
	values := make(map[string]float64, len(metrics))
	for _, mf := range metrics {
		m := mf.GetMetric()[0]
		if m.GetCounter() != nil {
			values[mf.GetName()] = m.GetCounter().GetValue()
		} else {
			values[mf.GetName()] = m.GetGauge().GetValue()
		}
	}
	require.Equal(t, map[string]float64{
		"test_pool_chunk_slabs_carved_total":   1,
		"test_pool_chunk_chunks":               4,
		"test_pool_chunk_chunks_in_use":        3,
		"test_pool_chunk_alloc_failures_total": 1,
	}, values)
}

func TestHeap(t *testing.T) {
	h := NewHeap[chunk]()
	a, err := h.Alloc()
	require.NoError(t, err)
	b, err := h.Alloc()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	h.At(a).a, h.At(b).a = 1, 2
	h.Free(a)
	require.Equal(t, 1, h.Len())
	c, err := h.Alloc()
	require.NoError(t, err)
	require.Equal(t, a, c)
	require.Equal(t, chunk{}, *h.At(c))
	require.Equal(t, uint64(2), h.At(b).a)
	require.Panics(t, func() { h.Free(a); h.Free(a) })
}

func TestSizeClassOf(t *testing.T) {
	for _, tc := range []struct {
		size, class uintptr
		ok          bool
	}{
		{0, 8, true},
		{8, 8, true},
		{9, 16, true},
		{40, 48, true},
		{128, 128, true},
		{129, 0, false},
	} {
		c, ok := SizeClassOf(tc.size)
		require.Equal(t, tc.ok, ok, tc.size)
		require.Equal(t, tc.class, c, tc.size)
	}
}

func TestFor(t *testing.T) {
	a, b := For[chunk](), For[chunk]()
	require.Same(t, a.(*Pool[chunk]), b.(*Pool[chunk]), "one process-wide pool per type")
	_, isPool := For[[256]byte]().(*Pool[[256]byte])
	require.False(t, isPool, "oversized types fall back to the heap")
	_, isHeap := For[[256]byte]().(*Heap[[256]byte])
	require.True(t, isHeap)
}
