package Queues

type Queue[T any] interface {
	Push(item T) error
	Pop() (T, error)
	Peek() (T, error)
	Empty() bool
	Size() int
}

// Deque is a Queue that can also be used from the back.
type Deque[T any] interface {
	Queue[T]
	PushFront(item T) error
	PopBack() (T, error)
	Clear()
}

type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "Queue is Empty: cannot Pop."
}
