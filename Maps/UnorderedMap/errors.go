package UnorderedMap

import (
	"errors"
	"fmt"
)

var ErrKeyNotFound = errors.New("UnorderedMap: key not found")

// KeyNotFoundError is returned by At for a missing key. It matches ErrKeyNotFound with errors.Is.
type KeyNotFoundError struct {
	Key any
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("UnorderedMap: key %v not found", e.Key)
}

func (e KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}
