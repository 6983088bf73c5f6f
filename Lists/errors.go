package Lists

import "errors"

var (
	ErrSentinel          = errors.New("Lists: iterator doesn't point at an element")
	ErrAllocatorMismatch = errors.New("Lists: lists don't share an allocator")
)

type EmptyListError struct{}

func (e EmptyListError) Error() string {
	return "list is empty"
}

// ForeignIteratorError is the panic value when an iterator is passed to a list it doesn't belong to.
type ForeignIteratorError struct{}

func (e ForeignIteratorError) Error() string {
	return "iterator belongs to another list"
}
