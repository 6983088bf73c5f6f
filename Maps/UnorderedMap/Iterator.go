package UnorderedMap

import "github.com/g-m-twostay/go-containers/Lists"

// Entry is the element the map stores in its list. The hash of Key is cached so scans and rehashes never call the hash function again.
type Entry[K, V any] struct {
	Key   K
	Value V
	hash  uint64
}

// Iterator is a position in an UnorderedMap. Iterators are comparable, End() compares equal only to End() of the same map.
type Iterator[K, V any] struct {
	it Lists.Iterator[Entry[K, V]]
}

func (i Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{i.it.Next()}
}

func (i Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{i.it.Prev()}
}

// Entry points at the stored entry, or is nil at End().
func (i Iterator[K, V]) Entry() *Entry[K, V] {
	return i.it.Value()
}

func (i Iterator[K, V]) Key() K {
	return i.it.Value().Key
}

// Value points at the stored value and may be written through.
func (i Iterator[K, V]) Value() *V {
	return &i.it.Value().Value
}

func (i Iterator[K, V]) Valid() bool {
	return i.it.Valid()
}
