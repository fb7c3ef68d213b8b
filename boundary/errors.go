package boundary

import (
	"errors"
	"fmt"
)

// ErrNullPointer matches every NullPointerError with errors.Is.
var ErrNullPointer = errors.New("required pointer is null")

// ErrPanic wraps a panic recovered at the boundary.
var ErrPanic = errors.New("panic at ABI boundary")

// NullPointerError reports a required pointer that the counterpart passed as
// null.
type NullPointerError struct {
	Name string
}

func (e *NullPointerError) Error() string {
	return fmt.Sprintf("null pointer: %s", e.Name)
}

// Is reports whether target is ErrNullPointer.
func (e *NullPointerError) Is(target error) bool {
	return target == ErrNullPointer
}

// NullPointer returns a NullPointerError naming the missing argument.
func NullPointer(name string) error {
	return &NullPointerError{Name: name}
}
