package audioports

import (
	"fmt"
	"strings"
)

// PortFlags describes the role and sample-size capabilities of a port.
type PortFlags uint32

const (
	// PortIsMain marks the main input or output. There can be only one main
	// port per direction and it must be at index 0.
	PortIsMain PortFlags = 1 << iota
	// PortSupports64Bits marks a port usable with 64-bit audio.
	PortSupports64Bits
	// PortPrefers64Bits marks a port that prefers 64-bit audio.
	PortPrefers64Bits
	// PortRequiresCommonSampleSize marks a port that must use the same sample
	// size as every other port carrying this flag.
	PortRequiresCommonSampleSize

	allPortFlags = PortIsMain | PortSupports64Bits | PortPrefers64Bits | PortRequiresCommonSampleSize
)

var portFlagNames = []string{
	"IS_MAIN",
	"SUPPORTS_64BITS",
	"PREFERS_64BITS",
	"REQUIRES_COMMON_SAMPLE_SIZE",
}

// PortFlagsFromBitsTruncate decodes raw bits, dropping bits this version
// does not know.
func PortFlagsFromBitsTruncate(bits uint32) PortFlags {
	return PortFlags(bits) & allPortFlags
}

// Bits returns the raw value.
func (f PortFlags) Bits() uint32 { return uint32(f) }

// Union returns the flags set in f or other.
func (f PortFlags) Union(other PortFlags) PortFlags { return f | other }

// Intersects reports whether f and other share any flag.
func (f PortFlags) Intersects(other PortFlags) bool { return f&other != 0 }

// Contains reports whether every flag of other is set in f.
func (f PortFlags) Contains(other PortFlags) bool { return f&other == other }

func (f PortFlags) String() string {
	return flagString(uint32(f), portFlagNames)
}

// RescanType describes which facets of the port list changed.
type RescanType uint32

const (
	// RescanNames: port names changed; the host may rescan right away.
	RescanNames RescanType = 1 << iota
	// RescanFlags: port flags changed.
	RescanFlags
	// RescanChannelCount: channel counts changed.
	RescanChannelCount
	// RescanPortType: port types changed.
	RescanPortType
	// RescanInPlacePair: in-place pairs changed.
	RescanInPlacePair
	// RescanList: ports were added or removed.
	RescanList

	allRescanTypes = RescanNames | RescanFlags | RescanChannelCount | RescanPortType | RescanInPlacePair | RescanList

	// restartRequired is every flag whose change must only be observed while
	// the plugin is deactivated.
	restartRequired = RescanFlags | RescanChannelCount | RescanPortType | RescanInPlacePair | RescanList
)

var rescanNames = []string{
	"NAMES",
	"FLAGS",
	"CHANNEL_COUNT",
	"PORT_TYPE",
	"IN_PLACE_PAIR",
	"LIST",
}

// RescanTypeFromBitsTruncate decodes raw bits, dropping unknown bits.
func RescanTypeFromBitsTruncate(bits uint32) RescanType {
	return RescanType(bits) & allRescanTypes
}

// AllRescanTypes returns every rescan flag known to this version.
func AllRescanTypes() RescanType { return allRescanTypes }

// ParseRescanType parses a flag name such as "channel_count" or "LIST".
func ParseRescanType(name string) (RescanType, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range rescanNames {
		if n == upper {
			return RescanType(1 << i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRescanFlag, name)
}

// ParseRescanTypes parses and unions a list of flag names.
func ParseRescanTypes(names []string) (RescanType, error) {
	var out RescanType
	for _, name := range names {
		flag, err := ParseRescanType(name)
		if err != nil {
			return 0, err
		}
		out = out.Union(flag)
	}
	return out, nil
}

// Bits returns the raw value.
func (r RescanType) Bits() uint32 { return uint32(r) }

// Union returns the flags set in r or other.
func (r RescanType) Union(other RescanType) RescanType { return r | other }

// Intersects reports whether r and other share any flag.
func (r RescanType) Intersects(other RescanType) bool { return r&other != 0 }

// Contains reports whether every flag of other is set in r.
func (r RescanType) Contains(other RescanType) bool { return r&other == other }

// RequiresDeactivate reports whether any set flag requires the plugin to be
// deactivated before the host rescans. This is true for every flag except
// RescanNames.
func (r RescanType) RequiresDeactivate() bool {
	return r.Intersects(restartRequired)
}

func (r RescanType) String() string {
	return flagString(uint32(r), rescanNames)
}

// flagString renders set bits as "A | B", with unknown bits in hex.
func flagString(bits uint32, names []string) string {
	if bits == 0 {
		return "(empty)"
	}
	var parts []string
	for i, name := range names {
		if bits&(1<<i) != 0 {
			parts = append(parts, name)
			bits &^= 1 << i
		}
	}
	if bits != 0 {
		parts = append(parts, fmt.Sprintf("%#x", bits))
	}
	return strings.Join(parts, " | ")
}
