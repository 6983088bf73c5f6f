package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	Go_Containers "github.com/g-m-twostay/go-containers"
	"github.com/g-m-twostay/go-containers/Maps/UnorderedMap"
	"github.com/g-m-twostay/go-containers/Metrics"
	"github.com/g-m-twostay/go-containers/Pools"
)

type fillFlags struct {
	keys, eraseEvery  int
	capacity          int
	maxLoad           float64
	slabLen, maxSlabs int
	hash              string
	seed              uint64
	check             bool
}

var flags fillFlags

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Inserts the keys 0..keys-1 into a map, optionally erases some of them, and prints the resulting state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return fill(cmd.OutOrStdout(), flags)
	},
}

func init() {
	addFillFlags(fillCmd.Flags(), &flags)
}

func addFillFlags(fs *pflag.FlagSet, f *fillFlags) {
	fs.IntVar(&f.keys, "keys", 100_000, "number of keys to insert")
	fs.IntVar(&f.eraseEvery, "erase-every", 0, "erase every key divisible by this after filling, 0 erases nothing")
	fs.IntVar(&f.capacity, "capacity", UnorderedMap.DefaultCapacity, "initial number of buckets")
	fs.Float64Var(&f.maxLoad, "max-load", UnorderedMap.DefaultMaxLoadFactor, "maximum load factor")
	fs.IntVar(&f.slabLen, "slab", Pools.DefaultSlabLen, "chunks per slab")
	fs.IntVar(&f.maxSlabs, "max-slabs", 0, "bound on the slabs the pool may carve, 0 is unbounded")
	fs.StringVar(&f.hash, "hash", "xxh3", "key hash: xxh3 or identity")
	fs.Uint64Var(&f.seed, "seed", 0, "xxh3 seed, 0 picks a random one")
	fs.BoolVar(&f.check, "check", false, "validate bucket runs and load factor at the end")
}

func hashOf(f fillFlags) (func(int) uint64, error) {
	switch f.hash {
	case "identity":
		return Go_Containers.IdentityHash[int], nil
	case "xxh3":
		seed := Go_Containers.Hasher(f.seed)
		if f.seed == 0 {
			seed = Go_Containers.NewHasher()
		}
		return Go_Containers.IntHasher[int](seed), nil
	default:
		return nil, fmt.Errorf("unknown hash %q", f.hash)
	}
}

func fill(w io.Writer, f fillFlags) error {
	hash, err := hashOf(f)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	pool := UnorderedMap.NewPool[int, int](
		Pools.WithSlabLen(f.slabLen),
		Pools.WithMaxSlabs(f.maxSlabs),
		Pools.WithLogger(log),
		Pools.WithCollector(Metrics.NewPoolCollector("mapstat", "ints", reg)),
	)
	m := UnorderedMap.NewComparable[int, int](hash,
		UnorderedMap.WithCapacity(f.capacity),
		UnorderedMap.WithMaxLoadFactor(f.maxLoad),
		UnorderedMap.WithAllocator[int, int](pool),
		UnorderedMap.WithLogger(log),
		UnorderedMap.WithCollector(Metrics.NewMapCollector("mapstat", "ints", reg)),
	)

	for k := 0; k < f.keys; k++ {
		if _, _, err := m.Insert(k, k); err != nil {
			log.Warn().Err(err).Int("key", k).Msg("stopped filling")
			break
		}
	}
	if f.eraseEvery > 0 {
		for k := 0; k < f.keys; k += f.eraseEvery {
			m.Delete(k)
		}
	}
	if f.check {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("invalid map: %w", err)
		}
		log.Info().Msg("map is valid")
	}

	fmt.Fprintf(w, "size: %d; capacity: %d; load factor: %.3f\n", m.Len(), m.Capacity(), m.LoadFactor())
	fmt.Fprintf(w, "pool: %v\n", pool.Stats())
	return printMetrics(w, reg)
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				v = c.GetValue()
			}
			fmt.Fprintf(w, "%s %v\n", mf.GetName(), v)
		}
	}
	return nil
}
