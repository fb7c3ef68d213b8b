package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxPortsPerDirection is the default upper bound on ports enumerated in
	// one direction during a scan.
	MaxPortsPerDirection = 1024

	// MaxIdentifierLength bounds extension identifiers a registry accepts.
	MaxIdentifierLength = 256
)

var (
	// ErrTooManyPorts indicates a port count above the allowed maximum
	ErrTooManyPorts = errors.New("too many ports")

	// ErrIdentifierTooLong indicates an extension identifier above MaxIdentifierLength
	ErrIdentifierTooLong = errors.New("identifier too long")
)

// ValidatePortCount checks a reported port count against max. A non-positive
// max selects MaxPortsPerDirection.
func ValidatePortCount(count uint32, max int) error {
	if max <= 0 {
		max = MaxPortsPerDirection
	}
	if uint64(count) > uint64(max) {
		return fmt.Errorf("%w: count %d exceeds limit %d", ErrTooManyPorts, count, max)
	}
	return nil
}

// ValidateIdentifier checks the length of an extension identifier.
func ValidateIdentifier(id string) error {
	if len(id) > MaxIdentifierLength {
		return fmt.Errorf("%w: length %d exceeds limit %d", ErrIdentifierTooLong, len(id), MaxIdentifierLength)
	}
	return nil
}
