package audioports

import (
	"bytes"
	"strings"

	"github.com/opd-ai/clapext/abi"
)

// PortType classifies the channel layout of a port. The zero value means the
// port has no declared type.
//
// Port types are compared by content with Equal; two PortType values built
// from different pointers may still be the same type.
type PortType struct {
	ptr *byte
}

// Well-known port types.
var (
	Mono      = PortType{ptr: abi.StaticCString(abi.PortMono + "\x00")}
	Stereo    = PortType{ptr: abi.StaticCString(abi.PortStereo + "\x00")}
	Surround  = PortType{ptr: abi.StaticCString(abi.PortSurround + "\x00")}
	Ambisonic = PortType{ptr: abi.StaticCString(abi.PortAmbisonic + "\x00")}
)

// NewPortType returns a port type for an extension-defined name.
func NewPortType(name string) (PortType, error) {
	if name == "" {
		return PortType{}, ErrEmptyPortType
	}
	p, err := abi.CString(name)
	if err != nil {
		return PortType{}, err
	}
	return PortType{ptr: p}, nil
}

// PortTypeFromChannelCount returns Mono for 1 channel and Stereo for 2.
func PortTypeFromChannelCount(channelCount uint32) (PortType, bool) {
	switch channelCount {
	case 1:
		return Mono, true
	case 2:
		return Stereo, true
	default:
		return PortType{}, false
	}
}

// PortTypeFromRaw decodes a raw port type pointer. A null pointer and an
// empty string both decode to absent. The result references raw without
// copying.
//
// raw must be null or point to a valid NUL-terminated string.
func PortTypeFromRaw(raw *byte) (PortType, bool) {
	if raw == nil || *raw == 0 {
		return PortType{}, false
	}
	return PortType{ptr: raw}, true
}

// IsZero reports whether t is the absent port type.
func (t PortType) IsZero() bool {
	return t.ptr == nil
}

// Raw returns the NUL-terminated string pointer, or nil when absent.
func (t PortType) Raw() *byte {
	return t.ptr
}

// Bytes returns the type name without copying.
func (t PortType) Bytes() []byte {
	return abi.CStringBytes(t.ptr)
}

// String returns the type name, lossily decoded as UTF-8.
func (t PortType) String() string {
	return strings.ToValidUTF8(string(t.Bytes()), "�")
}

// Equal compares two port types by content.
func (t PortType) Equal(other PortType) bool {
	if t.ptr == other.ptr {
		return true
	}
	return bytes.Equal(t.Bytes(), other.Bytes())
}

// clone copies the type name into memory owned by the caller.
func (t PortType) clone() PortType {
	if t.ptr == nil {
		return PortType{}
	}
	buf := make([]byte, 0, len(t.Bytes())+1)
	buf = append(buf, t.Bytes()...)
	buf = append(buf, 0)
	return PortType{ptr: &buf[0]}
}
