package HashSet

import (
	"github.com/g-m-twostay/go-containers/Maps/UnorderedMap"
	"github.com/g-m-twostay/go-containers/Sets"
)

// New HashSet of type E hashed by hash. opts are passed to the underlying UnorderedMap.
func New[E comparable](hash func(E) uint64, opts ...UnorderedMap.Option) *HashSet[E] {
	return &HashSet[E]{m: UnorderedMap.NewComparable[E, struct{}](hash, opts...), hash: hash}
}

// HashSet is a set over an UnorderedMap with empty values.
type HashSet[E comparable] struct {
	m    *UnorderedMap.UnorderedMap[E, struct{}]
	hash func(E) uint64
}

// Size of the set.
func (u *HashSet[E]) Size() uint {
	return uint(u.m.Len())
}

// Remove e from the set. Returns true if the removal is successful.
func (u *HashSet[E]) Remove(e E) bool {
	return u.m.Delete(e)
}

// Has e in the set. Returns true if e is present in the set.
func (u *HashSet[E]) Has(e E) bool {
	return u.m.Contains(e)
}

// Put e into the set. Returns true if e wasn't present and has been stored.
func (u *HashSet[E]) Put(e E) bool {
	ok, _ := u.Insert(e)
	return ok
}

// Insert is Put reporting why e couldn't be stored.
func (u *HashSet[E]) Insert(e E) (bool, error) {
	_, ok, err := u.m.Insert(e, struct{}{})
	return ok, err
}

// Take an arbitrary element from the set without removing it. Returns zero value if the set is empty.
func (u *HashSet[E]) Take() (e E) {
	if it := u.m.Begin(); it != u.m.End() {
		e = it.Key()
	}
	return
}

// Range over elements and call f on them. Stops when f returns false. f must not modify the set.
func (u *HashSet[E]) Range(f func(E) bool) {
	for e := range u.m.Keys() {
		if !f(e) {
			return
		}
	}
}

// PutAll puts every element of s and returns how many were new.
func (u *HashSet[E]) PutAll(s Sets.Set[E]) (n uint) {
	s.Range(func(e E) bool {
		if u.Put(e) {
			n++
		}
		return true
	})
	return
}

// RemoveAll removes every element of s and returns how many were present.
func (u *HashSet[E]) RemoveAll(s Sets.Set[E]) (n uint) {
	s.Range(func(e E) bool {
		if u.Remove(e) {
			n++
		}
		return true
	})
	return
}

// Eq reports whether u and s hold the same elements.
func (u *HashSet[E]) Eq(s Sets.Set[E]) bool {
	if u.Size() != s.Size() {
		return false
	}
	eq := true
	u.Range(func(e E) bool {
		eq = s.Has(e)
		return eq
	})
	return eq
}

// Union puts the elements of s into u.
func (u *HashSet[E]) Union(s Sets.Set[E]) {
	u.PutAll(s)
}

// Intersect removes the elements of u that aren't in s.
func (u *HashSet[E]) Intersect(s Sets.Set[E]) {
	for it := u.m.Begin(); it != u.m.End(); {
		if s.Has(it.Key()) {
			it = it.Next()
		} else {
			it = u.m.Erase(it)
		}
	}
}

// Filter returns a new set, on the same allocator, of the elements f accepts.
func (u *HashSet[E]) Filter(f func(E) bool) Sets.ExtendedSet[E] {
	r := New[E](u.hash, UnorderedMap.WithAllocator[E, struct{}](u.m.Allocator()))
	u.Range(func(e E) bool {
		if f(e) {
			r.Put(e)
		}
		return true
	})
	return r
}

var (
	_ Sets.Set[int]         = (*HashSet[int])(nil)
	_ Sets.ExtendedSet[int] = (*HashSet[int])(nil)
)
