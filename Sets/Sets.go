// Package Sets defines the set interfaces implemented by the packages under it.
package Sets

type Set[E any] interface {
	Put(E) bool
	Has(E) bool
	Remove(E) bool
	Size() uint
	Take() E
	Range(func(E) bool)
}

// ExtendedSet adds bulk operations between sets.
type ExtendedSet[E any] interface {
	PutAll(Set[E]) uint
	RemoveAll(Set[E]) uint
	Eq(Set[E]) bool
	Union(Set[E])
	Intersect(Set[E])
	Filter(func(E) bool) ExtendedSet[E]
}
