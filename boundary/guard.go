package boundary

import (
	"fmt"
	"runtime/debug"
)

// Guard runs fn on behalf of a foreign caller. An error returned by fn or a
// panic raised inside it is logged and replaced by fallback.
func Guard[T any](op string, fallback T, fn func() (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			NewLogger("boundary", op).
				WithError(fmt.Errorf("%w: %v", ErrPanic, r), op).
				WithField("stack", string(debug.Stack())).
				Error("Recovered panic before it crossed the ABI boundary")
			result = fallback
		}
	}()

	v, err := fn()
	if err != nil {
		NewLogger("boundary", op).withCallerSkip(2).WithError(err, op).Error("Call failed at ABI boundary")
		return fallback
	}
	return v
}

// Do is Guard for entry points without a return value.
func Do(op string, fn func() error) {
	Guard(op, struct{}{}, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}
