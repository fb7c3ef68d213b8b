package abi

import "fmt"

// InvalidID is the reserved raw value meaning "no identifier".
const InvalidID uint32 = 0xFFFFFFFF

// ID is a stable identifier such as a port id. The zero value is a valid id;
// absence is expressed with the ok result of IDFromRaw, never with InvalidID.
type ID uint32

// NewID returns an ID for a raw value. Callers must not pass InvalidID; the
// value is written through verbatim on encode.
func NewID(raw uint32) ID {
	return ID(raw)
}

// IDFromRaw decodes a raw id, reporting false for InvalidID.
func IDFromRaw(raw uint32) (ID, bool) {
	if raw == InvalidID {
		return 0, false
	}
	return ID(raw), true
}

// Get returns the raw value.
func (id ID) Get() uint32 {
	return uint32(id)
}

// String returns the decimal representation of the id.
func (id ID) String() string {
	return fmt.Sprintf("%d", uint32(id))
}

// OptionalIDToRaw encodes an optional id, using InvalidID when absent.
func OptionalIDToRaw(id ID, ok bool) uint32 {
	if !ok {
		return InvalidID
	}
	return uint32(id)
}
