package cache

import "fmt"

// Error is a typed cache-access error.
type Error struct {
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("cache: %s", e.Message) }

// ErrIndexOutOfBounds is returned for a solution data index outside the
// cache's range.
func ErrIndexOutOfBounds() *Error {
	return &Error{Message: "solution data index out of bounds"}
}
