package audioports

import "errors"

// Port type errors.
var (
	// ErrEmptyPortType indicates an empty port type string.
	ErrEmptyPortType = errors.New("port type cannot be empty")
)

// Implementation errors.
var (
	// ErrNotImplemented indicates the main thread does not implement the
	// audio ports interface for its side.
	ErrNotImplemented = errors.New("audio ports not implemented by main thread")
)

// Scan errors.
var (
	// ErrPortUnavailable indicates get returned false for an index below count.
	ErrPortUnavailable = errors.New("port info unavailable")

	// ErrDuplicatePortID indicates two ports of one direction share an id.
	ErrDuplicatePortID = errors.New("duplicate port id in direction")

	// ErrMainPortNotFirst indicates a main port at an index other than 0.
	ErrMainPortNotFirst = errors.New("main port must be at index 0")

	// ErrInvalidRescanFlag indicates an unknown rescan flag name.
	ErrInvalidRescanFlag = errors.New("invalid rescan flag")
)
