// Package abi defines the C-compatible memory layouts exchanged between a
// host and a plugin loaded into it.
//
// # Function Tables
//
// Every table mirrors a C struct of function pointers. Entries are Go func
// values; a nil entry is the equivalent of a NULL function pointer and must
// be treated by callers as "capability absent":
//
//	ports := (*abi.PluginAudioPorts)(ptr)
//	if ports.Count == nil {
//	    return 0
//	}
//	n := ports.Count(plugin, true)
//
// # Records
//
// AudioPortInfo keeps the field order of clap_audio_port_info:
//
//	{ id u32, name [NameSize]byte, flags u32, channel_count u32,
//	  port_type *char, in_place_pair u32 }
//
// Records are always written field by field by the implementing party and
// never read by the requesting party unless the call reported success.
//
// # Strings
//
// Strings crossing the boundary are NUL-terminated byte sequences referenced
// by *byte. CString and StaticCString produce such pointers from Go strings;
// CStringBytes gives a non-copying view of one.
package abi
