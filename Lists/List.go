/*
Package Lists implements a doubly linked list whose nodes are chunks of a Pools.Allocator.

Nodes refer to their neighbours by Pools.Index rather than by pointer. The two sentinels, one before the first element and one after the last, are stored inside the List itself under reserved indices, so an empty list allocates nothing and moving a list to another List value keeps every link valid.

# Iterators
An Iterator stays valid across inserts, erases of other elements and moves of its own element with MoveBefore. Using an iterator after its element has been erased, or after its list has been moved with MoveFrom, is undefined: the chunk may already belong to another element.

A List isn't safe for concurrent use, but lists in different goroutines may share one allocator.
*/
package Lists

import (
	"fmt"
	"iter"
	"strings"

	"github.com/emirpasic/gods/containers"

	"github.com/g-m-twostay/go-containers/Pools"
)

type kind uint8

const (
	unused   kind = iota //zeroed chunk, not linked anywhere.
	sentinel             //begin or end marker, holds no value.
	element
)

const (
	head = Pools.MaxIndex + 1 + iota //the sentinel before the first element.
	tail                             //the sentinel after the last element, End().
)

// Node is the chunk type a List allocates: a sentinel or a single value, plus the links to its neighbours.
type Node[T any] struct {
	prev, next Pools.Index
	kind       kind
	val        T
}

type List[T any] struct {
	alloc Pools.Allocator[Node[T]]
	ends  [2]Node[T] //ends[0] is head, ends[1] is tail.
	size  int
}

// New returns an empty list drawing its nodes from alloc. A nil alloc selects the process-wide pool for Node[T].
func New[T any](alloc Pools.Allocator[Node[T]]) *List[T] {
	if alloc == nil {
		alloc = Pools.For[Node[T]]()
	}
	l := &List[T]{alloc: alloc}
	l.init()
	return l
}

// NewFilled returns a list holding n copies of v.
func NewFilled[T any](alloc Pools.Allocator[Node[T]], n int, v T) (*List[T], error) {
	l := New[T](alloc)
	for range n {
		if _, err := l.PushBack(v); err != nil {
			l.Clear()
			return nil, err
		}
	}
	return l, nil
}

func (l *List[T]) init() {
	l.ends[0] = Node[T]{prev: Pools.Nil, next: tail, kind: sentinel}
	l.ends[1] = Node[T]{prev: head, next: Pools.Nil, kind: sentinel}
	l.size = 0
}

func (l *List[T]) node(i Pools.Index) *Node[T] {
	if i > Pools.MaxIndex {
		return &l.ends[i-head]
	}
	return l.alloc.At(i)
}

// link places the detached node i right before at.
func (l *List[T]) link(i, at Pools.Index) {
	n, right := l.node(i), l.node(at)
	n.prev, n.next = right.prev, at
	l.node(n.prev).next = i
	right.prev = i
}

// unlink detaches node i from its neighbours and returns it. Its own links are left stale.
func (l *List[T]) unlink(i Pools.Index) *Node[T] {
	n := l.node(i)
	l.node(n.prev).next = n.next
	l.node(n.next).prev = n.prev
	return n
}

func (l *List[T]) own(it Iterator[T]) {
	if it.l != l {
		panic(ForeignIteratorError{})
	}
}

func (l *List[T]) mustElement(it Iterator[T]) {
	l.own(it)
	if l.node(it.i).kind != element {
		panic(ErrSentinel)
	}
}

// Allocator returns the allocator nodes are drawn from.
func (l *List[T]) Allocator() Pools.Allocator[Node[T]] {
	return l.alloc
}

// Emplace allocates a node right before pos and lets build initialize its value in place.
func (l *List[T]) Emplace(pos Iterator[T], build func(*T)) (Iterator[T], error) {
	l.own(pos)
	i, err := l.alloc.Alloc()
	if err != nil {
		return l.End(), fmt.Errorf("Lists: insert: %w", err)
	}
	n := l.alloc.At(i)
	n.kind = element
	build(&n.val)
	l.link(i, pos.i)
	l.size++
	return Iterator[T]{l, i}, nil
}

// Insert puts v right before pos and returns its position. On allocation failure the list is left unchanged.
func (l *List[T]) Insert(pos Iterator[T], v T) (Iterator[T], error) {
	return l.Emplace(pos, func(p *T) { *p = v })
}

// Erase removes the element at pos and returns the position following it. pos must not be End().
func (l *List[T]) Erase(pos Iterator[T]) Iterator[T] {
	l.mustElement(pos)
	next := l.unlink(pos.i).next
	l.alloc.Free(pos.i)
	l.size--
	return Iterator[T]{l, next}
}

// MoveBefore relinks the element at it right before target, without copying or reallocating it. it keeps pointing at the moved element.
func (l *List[T]) MoveBefore(it, target Iterator[T]) Iterator[T] {
	l.mustElement(it)
	l.own(target)
	if it.i == target.i || l.node(it.i).next == target.i {
		return it
	}
	l.unlink(it.i)
	l.link(it.i, target.i)
	return it
}

// Transfer moves the element at it, which may belong to another list on the same allocator, right before target in l. The returned iterator refers to the element in l.
func (l *List[T]) Transfer(it, target Iterator[T]) Iterator[T] {
	if it.l == l {
		return l.MoveBefore(it, target)
	}
	it.l.mustElement(it)
	l.own(target)
	if it.l.alloc != l.alloc {
		panic(ErrAllocatorMismatch)
	}
	it.l.unlink(it.i)
	it.l.size--
	l.link(it.i, target.i)
	l.size++
	return Iterator[T]{l, it.i}
}

func (l *List[T]) PushBack(v T) (Iterator[T], error) {
	return l.Insert(l.End(), v)
}

func (l *List[T]) PushFront(v T) (Iterator[T], error) {
	return l.Insert(l.Begin(), v)
}

// PopBack removes and returns the last element. It panics with EmptyListError on an empty list.
func (l *List[T]) PopBack() T {
	if l.size == 0 {
		panic(EmptyListError{})
	}
	it := l.Back()
	v := *it.Value()
	l.Erase(it)
	return v
}

// PopFront removes and returns the first element. It panics with EmptyListError on an empty list.
func (l *List[T]) PopFront() T {
	if l.size == 0 {
		panic(EmptyListError{})
	}
	it := l.Begin()
	v := *it.Value()
	l.Erase(it)
	return v
}

// Begin is the position of the first element, or End() if l is empty.
func (l *List[T]) Begin() Iterator[T] {
	return Iterator[T]{l, l.ends[0].next}
}

// End is the position after the last element.
func (l *List[T]) End() Iterator[T] {
	return Iterator[T]{l, tail}
}

func (l *List[T]) Front() Iterator[T] {
	return l.Begin()
}

func (l *List[T]) Back() Iterator[T] {
	return Iterator[T]{l, l.ends[1].prev}
}

// At rebuilds the iterator for an element of l from its Index.
func (l *List[T]) At(i Pools.Index) Iterator[T] {
	return Iterator[T]{l, i}
}

// RBegin is the position of the last element for backward iteration.
func (l *List[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{l.Back()}
}

// REnd is the position before the first element.
func (l *List[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{Iterator[T]{l, head}}
}

// All yields pointers to the elements from front to back.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for it := l.Begin(); it.i != tail; it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward yields pointers to the elements from back to front.
func (l *List[T]) Backward() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for it := l.Back(); it.i != head; it = it.Prev() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (l *List[T]) Len() int {
	return l.size
}

func (l *List[T]) Size() int {
	return l.size
}

func (l *List[T]) Empty() bool {
	return l.size == 0
}

// Clear erases every element.
func (l *List[T]) Clear() {
	for i := l.ends[0].next; i != tail; {
		next := l.node(i).next
		l.alloc.Free(i)
		i = next
	}
	l.init()
}

// Values returns a copy of the elements in order.
func (l *List[T]) Values() []interface{} {
	vs := make([]interface{}, 0, l.size)
	for v := range l.All() {
		vs = append(vs, *v)
	}
	return vs
}

// Slice returns a copy of the elements in order.
func (l *List[T]) Slice() []T {
	vs := make([]T, 0, l.size)
	for v := range l.All() {
		vs = append(vs, *v)
	}
	return vs
}

func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteString("List[")
	for v := range l.All() {
		if b.Len() > len("List[") {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", *v)
	}
	b.WriteByte(']')
	return b.String()
}

// Clone returns a deep copy of l on the same allocator. The copy has new nodes holding the same values in the same order.
func (l *List[T]) Clone() (*List[T], error) {
	c := New[T](l.alloc)
	for v := range l.All() {
		if _, err := c.PushBack(*v); err != nil {
			c.Clear()
			return nil, err
		}
	}
	return c, nil
}

// Assign replaces the contents of l with a copy of other. On allocation failure l is left unchanged.
func (l *List[T]) Assign(other *List[T]) error {
	if other == l {
		return nil
	}
	tmp := New[T](l.alloc)
	for v := range other.All() {
		if _, err := tmp.PushBack(*v); err != nil {
			tmp.Clear()
			return err
		}
	}
	l.MoveFrom(tmp)
	return nil
}

// MoveFrom clears l and takes over the elements and allocator of other in O(1), leaving other empty. Iterators into other are invalidated.
func (l *List[T]) MoveFrom(other *List[T]) {
	if other == l {
		return
	}
	l.Clear()
	l.alloc = other.alloc
	l.ends, l.size = other.ends, other.size
	other.init()
}

var _ containers.Container = (*List[int])(nil)
