package audioports

import (
	"fmt"
	"strings"

	"github.com/opd-ai/clapext/abi"
)

// PortInfo describes a single audio port.
//
// Ids are unique within one direction; an input and an output may share an
// id.
type PortInfo struct {
	// ID is the stable port identifier. It must never be abi.InvalidID.
	ID abi.ID

	// Name is the display name as raw bytes. Names longer than abi.NameSize
	// are truncated on encode.
	Name []byte

	// ChannelCount is the number of channels carried by the port.
	ChannelCount uint32

	// Flags describes the port's role, e.g. PortIsMain.
	Flags PortFlags

	// PortType optionally classifies the layout; the zero value means none.
	PortType PortType

	// InPlacePair is the id of the port this one can process in place with,
	// valid when HasInPlacePair is set.
	InPlacePair    abi.ID
	HasInPlacePair bool
}

// PortInfoFromRaw decodes a raw record. It reports false for a nil record or
// a record whose id is the sentinel. Name and PortType alias raw.
//
// raw.PortType must be null or a valid NUL-terminated string for as long as
// the result is used.
func PortInfoFromRaw(raw *abi.AudioPortInfo) (PortInfo, bool) {
	if raw == nil {
		return PortInfo{}, false
	}
	id, ok := abi.IDFromRaw(raw.ID)
	if !ok {
		return PortInfo{}, false
	}

	portType, _ := PortTypeFromRaw(raw.PortType)
	pair, hasPair := abi.IDFromRaw(raw.InPlacePair)

	return PortInfo{
		ID:             id,
		Name:           abi.DataFromArrayBuf(&raw.Name),
		ChannelCount:   raw.ChannelCount,
		Flags:          PortFlagsFromBitsTruncate(raw.Flags),
		PortType:       portType,
		InPlacePair:    pair,
		HasInPlacePair: hasPair,
	}, true
}

// Clone returns a copy that no longer references the record it was decoded
// from.
func (i PortInfo) Clone() PortInfo {
	out := i
	out.Name = append([]byte(nil), i.Name...)
	out.PortType = i.PortType.clone()
	return out
}

// DisplayName returns the name lossily decoded as UTF-8.
func (i PortInfo) DisplayName() string {
	return strings.ToValidUTF8(string(i.Name), "�")
}

func (i PortInfo) String() string {
	portType := "none"
	if !i.PortType.IsZero() {
		portType = i.PortType.String()
	}
	pair := "none"
	if i.HasInPlacePair {
		pair = i.InPlacePair.String()
	}
	return fmt.Sprintf("PortInfo{id: %s, name: %q, channel_count: %d, flags: %s, port_type: %s, in_place_pair: %s}",
		i.ID, i.DisplayName(), i.ChannelCount, i.Flags, portType, pair)
}
