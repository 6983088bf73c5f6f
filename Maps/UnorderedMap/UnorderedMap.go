/*
Package UnorderedMap is a chaining hash map that keeps every entry in one shared Lists.List.

Entries of the same bucket form a contiguous run of the list, and the bucket array records the first node of each run, so a lookup scans from the head of its run until the bucket changes. New entries are linked at the front of their run. Growing the table moves nodes between runs without reallocating them, so iterators stay valid across rehashes; erasing an entry invalidates only iterators to it.

The iteration order groups entries by bucket and is otherwise unspecified; it changes on rehash.
*/
package UnorderedMap

import (
	"fmt"
	"iter"
	"math"
	"strings"

	Go_Containers "github.com/g-m-twostay/go-containers"
	"github.com/g-m-twostay/go-containers/Lists"
	"github.com/g-m-twostay/go-containers/Maps"
	"github.com/g-m-twostay/go-containers/Metrics"
	"github.com/g-m-twostay/go-containers/Pools"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

type UnorderedMap[K, V any] struct {
	data    *Lists.List[Entry[K, V]]
	buckets []Pools.Index //first node of each bucket run, Pools.Nil for an empty bucket.
	maxLoad float64
	hash    func(K) uint64
	equal   func(K, K) bool
	log     zerolog.Logger
	metrics Metrics.MapCollector
}

// New returns an empty map using hash and equal on keys. Keys that are equal must hash the same.
func New[K, V any](hash func(K) uint64, equal func(K, K) bool, opts ...Option) *UnorderedMap[K, V] {
	c := newConfig(opts)
	return &UnorderedMap[K, V]{
		data:    Lists.New[Entry[K, V]](allocatorOf[K, V](&c)),
		buckets: emptyBuckets(c.capacity),
		maxLoad: c.maxLoad,
		hash:    hash,
		equal:   equal,
		log:     c.log.With().Str("component", "unordered_map").Logger(),
		metrics: c.metrics,
	}
}

// NewComparable is New with == as the key equality.
func NewComparable[K comparable, V any](hash func(K) uint64, opts ...Option) *UnorderedMap[K, V] {
	return New[K, V](hash, func(a, b K) bool { return a == b }, opts...)
}

// NewHashable is New for keys that hash and compare themselves.
func NewHashable[K Maps.Hashable, V any](opts ...Option) *UnorderedMap[K, V] {
	return New[K, V](Maps.HashableHash[K], Maps.HashableEqual[K], opts...)
}

func emptyBuckets(n int) []Pools.Index {
	b := make([]Pools.Index, n)
	for i := range b {
		b[i] = Pools.Nil
	}
	return b
}

func (u *UnorderedMap[K, V]) bucketOf(h uint64) int {
	return int(h % uint64(len(u.buckets)))
}

func (u *UnorderedMap[K, V]) find(k K, h uint64) Lists.Iterator[Entry[K, V]] {
	b, end := u.bucketOf(h), u.data.End()
	if u.buckets[b] == Pools.Nil {
		return end
	}
	for it := u.data.At(u.buckets[b]); it != end; it = it.Next() {
		e := it.Value()
		if u.bucketOf(e.hash) != b {
			break
		}
		if e.hash == h && u.equal(e.Key, k) {
			return it
		}
	}
	return end
}

// Find returns the position of k, or End() if k isn't present.
func (u *UnorderedMap[K, V]) Find(k K) Iterator[K, V] {
	it := u.find(k, u.hash(k))
	u.metrics.OnLookup(it != u.data.End())
	return Iterator[K, V]{it}
}

func (u *UnorderedMap[K, V]) Contains(k K) bool {
	return u.Find(k) != u.End()
}

// link makes the entry at it the front of its bucket run. it is either the head of that run already, inside it, or outside every run.
func (u *UnorderedMap[K, V]) link(it Lists.Iterator[Entry[K, V]]) {
	b := u.bucketOf(it.Value().hash)
	if head := u.buckets[b]; head != Pools.Nil {
		u.data.MoveBefore(it, u.data.At(head))
	}
	u.buckets[b] = it.Index()
}

// settle places a freshly allocated entry, which sits at the front of the list, growing the table first if the entry pushed the load factor over the maximum.
func (u *UnorderedMap[K, V]) settle(it Lists.Iterator[Entry[K, V]]) {
	n := len(u.buckets)
	for float64(u.data.Len())/float64(n) > u.maxLoad {
		n <<= 1
	}
	if n != len(u.buckets) {
		u.rehash(n)
	}
	u.link(it)
}

func (u *UnorderedMap[K, V]) insert(k K, v V, h uint64) (Lists.Iterator[Entry[K, V]], bool, error) {
	if it := u.find(k, h); it != u.data.End() {
		u.metrics.OnInsert(false)
		return it, false, nil
	}
	it, err := u.data.Insert(u.data.Begin(), Entry[K, V]{Key: k, Value: v, hash: h})
	if err != nil {
		return it, false, err
	}
	u.settle(it)
	u.metrics.OnInsert(true)
	return it, true, nil
}

// Insert adds (k, v) unless k is present. It returns the position of k and whether the entry was added. If a node can't be allocated the map is left unchanged and the error is returned.
func (u *UnorderedMap[K, V]) Insert(k K, v V) (Iterator[K, V], bool, error) {
	it, ok, err := u.insert(k, v, u.hash(k))
	return Iterator[K, V]{it}, ok, err
}

// InsertPair is Insert taking an Entry.
func (u *UnorderedMap[K, V]) InsertPair(e Entry[K, V]) (Iterator[K, V], bool, error) {
	return u.Insert(e.Key, e.Value)
}

// InsertRange inserts every pair of seq. It stops at the first allocation failure, keeping the pairs inserted so far.
func (u *UnorderedMap[K, V]) InsertRange(seq iter.Seq2[K, V]) error {
	for k, v := range seq {
		if _, _, err := u.Insert(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Emplace builds an entry in place, at the front of the list, then moves it into its bucket run. If the built key is already present the new entry is dropped and the existing position returned.
func (u *UnorderedMap[K, V]) Emplace(build func(k *K, v *V)) (Iterator[K, V], bool, error) {
	it, err := u.data.Emplace(u.data.Begin(), func(e *Entry[K, V]) { build(&e.Key, &e.Value) })
	if err != nil {
		return u.End(), false, err
	}
	e := it.Value()
	e.hash = u.hash(e.Key)
	if dup := u.find(e.Key, e.hash); dup != u.data.End() {
		u.data.Erase(it)
		u.metrics.OnInsert(false)
		return Iterator[K, V]{dup}, false, nil
	}
	u.settle(it)
	u.metrics.OnInsert(true)
	return Iterator[K, V]{it}, true, nil
}

// Erase removes the entry at pos and returns the position after it.
func (u *UnorderedMap[K, V]) Erase(pos Iterator[K, V]) Iterator[K, V] {
	if pos.it.List() != u.data {
		panic(Lists.ForeignIteratorError{})
	}
	e := pos.it.Value()
	if e == nil {
		panic(Lists.ErrSentinel)
	}
	if b := u.bucketOf(e.hash); u.buckets[b] == pos.it.Index() {
		u.buckets[b] = Pools.Nil
		if next := pos.it.Next(); next.Value() != nil && u.bucketOf(next.Value().hash) == b {
			u.buckets[b] = next.Index()
		}
	}
	u.metrics.OnErase()
	return Iterator[K, V]{u.data.Erase(pos.it)}
}

// EraseRange removes the entries in [first, last) and returns last.
func (u *UnorderedMap[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	for first != last {
		first = u.Erase(first)
	}
	return last
}

// Delete removes k and reports whether it was present.
func (u *UnorderedMap[K, V]) Delete(k K) bool {
	if it := u.Find(k); it != u.End() {
		u.Erase(it)
		return true
	}
	return false
}

// rehash regroups every node under n buckets. Nodes are spliced into a fresh list one by one and the list is then moved back, so no node is reallocated.
func (u *UnorderedMap[K, V]) rehash(n int) {
	old := len(u.buckets)
	fresh := Lists.New[Entry[K, V]](u.data.Allocator())
	u.buckets = emptyBuckets(n)
	for it, end := u.data.Begin(), u.data.End(); it != end; {
		next := it.Next()
		b := u.bucketOf(it.Value().hash)
		target := fresh.Begin()
		if head := u.buckets[b]; head != Pools.Nil {
			target = fresh.At(head)
		}
		u.buckets[b] = fresh.Transfer(it, target).Index()
		it = next
	}
	u.data.MoveFrom(fresh)
	u.metrics.OnRehash(old, n, u.data.Len())
	u.log.Debug().Int("old_capacity", old).Int("new_capacity", n).Int("size", u.data.Len()).Msg("rehashed")
}

// Rehash rebuilds the table with n buckets. n is raised to the least capacity that keeps the load factor within its maximum.
func (u *UnorderedMap[K, V]) Rehash(n int) {
	if least := int(math.Ceil(float64(u.data.Len()) / u.maxLoad)); n < least {
		n = least
	}
	u.rehash(max(n, 1))
}

// Reserve makes room for n entries, rehashing to ceil(n / MaxLoadFactor()) buckets if n entries would exceed the maximum load factor.
func (u *UnorderedMap[K, V]) Reserve(n int) {
	if float64(n)/float64(len(u.buckets)) > u.maxLoad {
		u.rehash(int(math.Ceil(float64(n) / u.maxLoad)))
	}
}

// Index returns a pointer to the value of k, inserting k with the zero value first if it's absent.
func (u *UnorderedMap[K, V]) Index(k K) (*V, error) {
	var zero V
	it, _, err := u.insert(k, zero, u.hash(k))
	if err != nil {
		return nil, err
	}
	return &it.Value().Value, nil
}

// At returns a pointer to the value of k, or a KeyNotFoundError.
func (u *UnorderedMap[K, V]) At(k K) (*V, error) {
	it := u.Find(k)
	if it == u.End() {
		return nil, KeyNotFoundError{k}
	}
	return it.Value(), nil
}

func (u *UnorderedMap[K, V]) Get(k K) (v V, ok bool) {
	if it := u.Find(k); it != u.End() {
		return *it.Value(), true
	}
	return
}

func (u *UnorderedMap[K, V]) Len() int {
	return u.data.Len()
}

func (u *UnorderedMap[K, V]) Size() int {
	return u.data.Len()
}

func (u *UnorderedMap[K, V]) Empty() bool {
	return u.data.Empty()
}

// Capacity is the number of buckets.
func (u *UnorderedMap[K, V]) Capacity() int {
	return len(u.buckets)
}

func (u *UnorderedMap[K, V]) LoadFactor() float64 {
	return float64(u.data.Len()) / float64(len(u.buckets))
}

func (u *UnorderedMap[K, V]) MaxLoadFactor() float64 {
	return u.maxLoad
}

// SetMaxLoadFactor changes the maximum load factor, growing the table if the current one exceeds it. It panics if f isn't positive.
func (u *UnorderedMap[K, V]) SetMaxLoadFactor(f float64) {
	if !(f > 0) {
		panic(fmt.Errorf("UnorderedMap: max load factor %v isn't positive", f))
	}
	u.maxLoad = f
	if u.LoadFactor() > f {
		u.Rehash(len(u.buckets))
	}
}

func (u *UnorderedMap[K, V]) Begin() Iterator[K, V] {
	return Iterator[K, V]{u.data.Begin()}
}

func (u *UnorderedMap[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{u.data.End()}
}

// All yields every key and value in list order.
func (u *UnorderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := range u.data.All() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

func (u *UnorderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for e := range u.data.All() {
			if !yield(e.Key) {
				return
			}
		}
	}
}

func (u *UnorderedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for e := range u.data.All() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Clear erases every entry. The capacity is kept.
func (u *UnorderedMap[K, V]) Clear() {
	u.data.Clear()
	for i := range u.buckets {
		u.buckets[i] = Pools.Nil
	}
}

// Allocator returns the allocator the map's nodes come from.
func (u *UnorderedMap[K, V]) Allocator() Pools.Allocator[Lists.Node[Entry[K, V]]] {
	return u.data.Allocator()
}

// Clone returns a copy of u with the same capacity, maximum load factor, functions and allocator. On allocation failure nothing is kept.
func (u *UnorderedMap[K, V]) Clone() (*UnorderedMap[K, V], error) {
	data, err := u.data.Clone()
	if err != nil {
		return nil, err
	}
	c := &UnorderedMap[K, V]{data: data, buckets: emptyBuckets(len(u.buckets)), maxLoad: u.maxLoad, hash: u.hash, equal: u.equal, log: u.log, metrics: u.metrics}
	//runs are copied in order, the first node seen of each bucket heads its run.
	for it, end := data.Begin(), data.End(); it != end; it = it.Next() {
		if b := c.bucketOf(it.Value().hash); c.buckets[b] == Pools.Nil {
			c.buckets[b] = it.Index()
		}
	}
	return c, nil
}

// Assign replaces the contents of u with a copy of other. On allocation failure u is left unchanged.
func (u *UnorderedMap[K, V]) Assign(other *UnorderedMap[K, V]) error {
	if other == u {
		return nil
	}
	c, err := other.Clone()
	if err != nil {
		return err
	}
	u.MoveFrom(c)
	return nil
}

// MoveFrom clears u and takes over the entries, buckets, functions and maximum load factor of other, leaving other empty with its capacity. Iterators into other now refer to u.
func (u *UnorderedMap[K, V]) MoveFrom(other *UnorderedMap[K, V]) {
	if other == u {
		return
	}
	u.data.Clear()
	u.data, other.data = other.data, Lists.New[Entry[K, V]](other.data.Allocator())
	u.buckets, other.buckets = other.buckets, emptyBuckets(len(other.buckets))
	u.maxLoad, u.hash, u.equal = other.maxLoad, other.hash, other.equal
}

// Validate checks that every bucket run is contiguous and headed by its bucket entry, that cached hashes are current, and that the load factor is within its maximum. Every violation found is reported.
func (u *UnorderedMap[K, V]) Validate() error {
	var result *multierror.Error
	seen := Go_Containers.NewBitArray(len(u.buckets))
	prev, n := -1, 0
	for it, end := u.data.Begin(), u.data.End(); it != end; it = it.Next() {
		e := it.Value()
		n++
		if h := u.hash(e.Key); h != e.hash {
			result = multierror.Append(result, fmt.Errorf("key %v: cached hash %#x, hashes to %#x", e.Key, e.hash, h))
		}
		b := u.bucketOf(e.hash)
		if b == prev {
			continue
		}
		prev = b
		if seen.Get(b) {
			result = multierror.Append(result, fmt.Errorf("bucket %d: run is split at key %v", b, e.Key))
			continue
		}
		seen.Up(b)
		if u.buckets[b] != it.Index() {
			result = multierror.Append(result, fmt.Errorf("bucket %d: head is %d, run starts at %d", b, u.buckets[b], it.Index()))
		}
	}
	for b, head := range u.buckets {
		if head != Pools.Nil && !seen.Get(b) {
			result = multierror.Append(result, fmt.Errorf("bucket %d: head %d but no run", b, head))
		}
	}
	if n != u.data.Len() {
		result = multierror.Append(result, fmt.Errorf("%d entries linked, size is %d", n, u.data.Len()))
	}
	if lf := u.LoadFactor(); lf > u.maxLoad {
		result = multierror.Append(result, fmt.Errorf("load factor %v exceeds %v", lf, u.maxLoad))
	}
	return result.ErrorOrNil()
}

func (u *UnorderedMap[K, V]) String() string {
	var b strings.Builder
	b.WriteString("UnorderedMap[")
	first := true
	for k, v := range u.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}

var _ Maps.Map[int, int] = (*UnorderedMap[int, int])(nil)
