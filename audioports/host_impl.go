package audioports

import (
	"fmt"
	"unsafe"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/boundary"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/host"
)

// HostAudioPortsImpl is implemented by a host main thread that tracks a
// plugin's audio ports.
type HostAudioPortsImpl interface {
	// IsRescanFlagSupported reports whether the host honours flag.
	IsRescanFlagSupported(flag RescanType) bool

	// Rescan is called by the plugin when the facets in flags changed.
	Rescan(flags RescanType)
}

var hostTable = abi.HostAudioPorts{
	IsRescanFlagSupported: hostIsRescanFlagSupported,
	Rescan:                hostRescan,
}

// HostImplementation registers the audio ports table with a host session.
var HostImplementation = extension.Implementation[extension.HostSide]{
	Identifiers: []string{abi.ExtAudioPorts},
	Table:       unsafe.Pointer(&hostTable),
}

func hostImpl(s *host.Session) (HostAudioPortsImpl, error) {
	impl, ok := s.MainThread().(HostAudioPortsImpl)
	if !ok {
		return nil, ErrNotImplemented
	}
	return impl, nil
}

func hostIsRescanFlagSupported(h *abi.Host, flag uint32) bool {
	return host.Handle(h, "audio_ports.is_rescan_flag_supported", false, func(s *host.Session) (bool, error) {
		impl, err := hostImpl(s)
		if err != nil {
			return false, err
		}
		known := RescanTypeFromBitsTruncate(flag)
		if known == 0 {
			return false, nil
		}
		return impl.IsRescanFlagSupported(known), nil
	})
}

func hostRescan(h *abi.Host, flags uint32) {
	host.Handle(h, "audio_ports.rescan", struct{}{}, func(s *host.Session) (struct{}, error) {
		impl, err := hostImpl(s)
		if err != nil {
			return struct{}{}, err
		}
		known := RescanTypeFromBitsTruncate(flags)
		if known.Bits() != flags {
			boundary.NewLogger("audioports", "audio_ports.rescan").
				WithField("session_id", s.ID()).
				WithField("unknown_bits", fmt.Sprintf("%#x", flags&^known.Bits())).
				Warn("Ignoring unknown rescan flags")
		}
		impl.Rescan(known)
		return struct{}{}, nil
	})
}
