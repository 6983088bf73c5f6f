package Queues

import (
	"errors"
	"testing"

	"github.com/g-m-twostay/go-containers/Lists"
	"github.com/g-m-twostay/go-containers/Pools"
)

func TestListQueue(t *testing.T) {
	Q := MakeListQueue[int](nil)
	if _, e := Q.Pop(); e == nil {
		t.Error("pop on empty queue")
	}
	for i := 0; i < 10; i++ {
		if e := Q.Push(i); e != nil {
			t.Fatal(e)
		}
	}
	if v, _ := Q.Peek(); v != 0 || Q.Size() != 10 {
		t.Error("wrong peek", v)
	}
	for i := 0; i < 5; i++ {
		if v, e := Q.Pop(); e != nil || v != i {
			t.Error("wrong pop", v, e)
		}
	}
	Q.PushFront(-1)
	if v, _ := Q.Pop(); v != -1 {
		t.Error("wrong push front", v)
	}
	if v, _ := Q.PopBack(); v != 9 {
		t.Error("wrong pop back", v)
	}
	Q.Clear()
	_, e := Q.PopBack()
	var empty *EmptyQueueError
	if !Q.Empty() || !errors.As(e, &empty) {
		t.Error("wrong clear", e)
	}
}

func TestListQueue_Bounded(t *testing.T) {
	Q := MakeListQueue[int](Pools.New[Lists.Node[int]](Pools.WithSlabLen(2), Pools.WithMaxSlabs(1)))
	Q.Push(1)
	Q.Push(2)
	if e := Q.Push(3); !errors.Is(e, Pools.ErrOutOfMemory) {
		t.Error("wrong push error", e)
	}
	Q.Pop()
	if e := Q.Push(3); e != nil {
		t.Error("freed node not reused", e)
	}
}
