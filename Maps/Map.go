/*
Package Maps holds what the map implementations under it share: the Hashable key contract and the Map interface with its helpers.

# Implementations
UnorderedMap is a single threaded chaining hash map whose entries live in one pooled list. It isn't safe for concurrent use; maps in different goroutines may still share one allocator.

# Usage
It's recommended to pass a hash function suited to the key type, such as Go_Containers.IntHasher or Hasher.HashString, instead of hashing a formatted key. Equal keys must hash the same.
*/
package Maps

import "iter"

// Hashable keys carry their own hash and equality.
type Hashable interface {
	Hash() uint64
	Equal(other Hashable) bool
}

func HashableHash[K Hashable](k K) uint64 {
	return k.Hash()
}

func HashableEqual[K Hashable](a, b K) bool {
	return a.Equal(b)
}

// Map is the subset of operations every map in this module offers.
type Map[K any, V any] interface {
	Get(K) (V, bool)
	Delete(K) bool
	Len() int
	All() iter.Seq2[K, V]
}

// Equal reports whether a and b hold the same keys with equal values.
func Equal[K any, V comparable](a, b Map[K, V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		if w, ok := b.Get(k); !ok || v != w {
			return false
		}
	}
	return true
}

// EqualFunc is like Equal, but compares values with eq.
func EqualFunc[K any, V1, V2 any](a Map[K, V1], b Map[K, V2], eq func(V1, V2) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		if w, ok := b.Get(k); !ok || !eq(v, w) {
			return false
		}
	}
	return true
}
