package abi

import (
	"errors"
	"strings"
	"unsafe"
)

// ErrInteriorNul indicates a string that cannot be represented as a C string.
var ErrInteriorNul = errors.New("string contains interior NUL byte")

// CString returns a pointer to a NUL-terminated copy of s. The copy lives as
// long as the returned pointer is reachable.
func CString(s string) (*byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrInteriorNul
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return &buf[0], nil
}

// StaticCString returns a pointer to the bytes of a literal that already
// ends with a NUL byte. It panics on a literal without the terminator, which
// is a programming error caught at package initialisation.
func StaticCString(s string) *byte {
	if len(s) == 0 || s[len(s)-1] != 0 {
		panic("abi: static C string must be NUL-terminated")
	}
	return unsafe.StringData(s)
}

// CStringBytes returns the bytes before the terminating NUL of p without
// copying. A nil pointer yields nil.
//
// p must point to a valid NUL-terminated sequence.
func CStringBytes(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return unsafe.Slice(p, n)
}

// GoString copies the C string at p into a Go string. A nil pointer yields "".
func GoString(p *byte) string {
	return string(CStringBytes(p))
}

// DataFromArrayBuf returns the contents of a fixed-size name buffer up to the
// first NUL byte, or the whole buffer when it holds no NUL. The result aliases
// buf.
func DataFromArrayBuf(buf *[NameSize]byte) []byte {
	for i, b := range buf {
		if b == 0 {
			return buf[:i]
		}
	}
	return buf[:]
}

// WriteToArrayBuf copies value into buf, truncating to the buffer capacity
// and zero-filling every remaining byte so the buffer is fully defined.
func WriteToArrayBuf(buf *[NameSize]byte, value []byte) {
	n := copy(buf[:], value)
	clear(buf[n:])
}
