package memory

import "fmt"

// Error is a typed memory operation error.
type Error struct {
	Code    Code
	Message string
}

// Code enumerates the distinct ways a memory operation can fail.
type Code int

const (
	// CodeIndexOutOfBounds indicates an address or length was negative or
	// pointed outside the currently allocated region.
	CodeIndexOutOfBounds Code = iota
	// CodeOverflow indicates an allocation would grow memory past Size.
	CodeOverflow
)

func (e *Error) Error() string {
	return fmt.Sprintf("memory: %s", e.Message)
}

// ErrIndexOutOfBounds is returned for any out-of-range or negative address.
func ErrIndexOutOfBounds() *Error {
	return &Error{Code: CodeIndexOutOfBounds, Message: "index out of bounds"}
}

// ErrOverflow is returned when growing memory would exceed Size.
func ErrOverflow() *Error {
	return &Error{Code: CodeOverflow, Message: "memory overflow"}
}
