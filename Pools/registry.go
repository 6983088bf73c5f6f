package Pools

import (
	"reflect"
	"sync"
	"unsafe"
)

// SizeClasses are the chunk sizes, in bytes, served by the process-wide pools of For.
var SizeClasses = [...]uintptr{8, 16, 24, 32, 48, 64, 96, 128}

// SizeClassOf returns the smallest size class holding size bytes, or false when size is bigger than every class.
func SizeClassOf(size uintptr) (uintptr, bool) {
	for _, c := range SizeClasses {
		if size <= c {
			return c, true
		}
	}
	return 0, false
}

var shared sync.Map //reflect.Type -> *Pool[E]

// For returns the process-wide pool for E, creating it on first use. Pools returned by For are never released. If E doesn't fit any size class, For returns a new Heap instead.
func For[E any]() Allocator[E] {
	var e E
	if _, ok := SizeClassOf(unsafe.Sizeof(e)); !ok {
		return NewHeap[E]()
	}
	t := reflect.TypeOf((*E)(nil)).Elem()
	if p, ok := shared.Load(t); ok {
		return p.(*Pool[E])
	}
	p, _ := shared.LoadOrStore(t, New[E]())
	return p.(*Pool[E])
}
