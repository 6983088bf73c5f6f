package Queues

import (
	"github.com/g-m-twostay/go-containers/Lists"
	"github.com/g-m-twostay/go-containers/Pools"
)

// ListQueue is a Deque over a Lists.List, so its nodes come from a pool.
type ListQueue[T any] struct {
	l *Lists.List[T]
}

// MakeListQueue returns an empty queue drawing nodes from alloc, nil selects the shared pool for T.
func MakeListQueue[T any](alloc Pools.Allocator[Lists.Node[T]]) *ListQueue[T] {
	return &ListQueue[T]{Lists.New[T](alloc)}
}

func (u *ListQueue[T]) Empty() bool {
	return u.l.Empty()
}

func (u *ListQueue[T]) Size() int {
	return u.l.Len()
}

func (u *ListQueue[T]) Clear() {
	u.l.Clear()
}

func (u *ListQueue[T]) Push(item T) error {
	_, err := u.l.PushBack(item)
	return err
}

func (u *ListQueue[T]) PushFront(item T) error {
	_, err := u.l.PushFront(item)
	return err
}

func (u *ListQueue[T]) Pop() (item T, e error) {
	if u.l.Empty() {
		return item, &EmptyQueueError{}
	}
	return u.l.PopFront(), nil
}

func (u *ListQueue[T]) PopBack() (item T, e error) {
	if u.l.Empty() {
		return item, &EmptyQueueError{}
	}
	return u.l.PopBack(), nil
}

func (u *ListQueue[T]) Peek() (item T, e error) {
	if u.l.Empty() {
		return item, &EmptyQueueError{}
	}
	return *u.l.Front().Value(), nil
}

var _ Deque[int] = (*ListQueue[int])(nil)
