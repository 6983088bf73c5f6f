package Lists

import "github.com/g-m-twostay/go-containers/Pools"

// Iterator is a position in a List: an element or one of the two sentinels. Iterators are comparable, and two are equal iff they denote the same position of the same list.
type Iterator[T any] struct {
	l *List[T]
	i Pools.Index
}

func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{it.l, it.l.node(it.i).next}
}

func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{it.l, it.l.node(it.i).prev}
}

// Value points at the element, or is nil at a sentinel.
func (it Iterator[T]) Value() *T {
	if n := it.l.node(it.i); n.kind == element {
		return &n.val
	}
	return nil
}

// Valid reports whether it denotes an element of a list.
func (it Iterator[T]) Valid() bool {
	return it.l != nil && it.i <= Pools.MaxIndex
}

// Index is the allocator index of the element's node.
func (it Iterator[T]) Index() Pools.Index {
	return it.i
}

// List returns the list it belongs to.
func (it Iterator[T]) List() *List[T] {
	return it.l
}

// ReverseIterator walks a List from back to front. Its Next goes towards the front.
type ReverseIterator[T any] struct {
	it Iterator[T]
}

func (r ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{r.it.Prev()}
}

func (r ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{r.it.Next()}
}

func (r ReverseIterator[T]) Value() *T {
	return r.it.Value()
}

// Base returns the forward iterator one position after the element r denotes, so that RBegin().Base() == End().
func (r ReverseIterator[T]) Base() Iterator[T] {
	return r.it.Next()
}
