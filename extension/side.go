package extension

import "unsafe"

// HostSide tags tables implemented by the host and called by plugins.
type HostSide struct{}

// PluginSide tags tables implemented by a plugin and called by its host.
type PluginSide struct{}

// Side is satisfied by exactly the two side tags.
type Side interface {
	HostSide | PluginSide
}

// SideName returns "host" or "plugin" for the side S.
func SideName[S Side]() string {
	var s S
	if _, ok := any(s).(HostSide); ok {
		return "host"
	}
	return "plugin"
}

// RawExtension is an opaque, borrowed address of a table owned by side S.
// It is only produced by negotiation and is never freed by its holder.
type RawExtension[S Side] struct {
	ptr unsafe.Pointer
}

// Address returns the table address, for diagnostics and identity checks.
func (r RawExtension[S]) Address() uintptr {
	return uintptr(r.ptr)
}

// Cast reinterprets the table behind raw as a T.
//
// Safety: raw must reference a live table whose memory layout is exactly T
// and which was obtained for side S. Violating this is undefined behavior;
// it is not detected.
func Cast[T any, S Side](raw RawExtension[S]) *T {
	return (*T)(raw.ptr)
}
