package plugin

import (
	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/extension"
)

// negotiationCacheSize bounds the remembered host extension lookups.
const negotiationCacheSize = 16

// HostHandle is a plugin's view of the host that loaded it.
type HostHandle struct {
	raw      *abi.Host
	provider *extension.Provider[extension.HostSide]
}

func newHostHandle(raw *abi.Host) *HostHandle {
	return &HostHandle{
		raw:      raw,
		provider: extension.NewHostProvider(raw, negotiationCacheSize),
	}
}

// Raw returns the host table, for passing back into host extension calls.
func (h *HostHandle) Raw() *abi.Host {
	return h.raw
}

// Provider negotiates host extensions.
func (h *HostHandle) Provider() *extension.Provider[extension.HostSide] {
	return h.provider
}

// Name returns the host's name, or "" when it did not provide one.
func (h *HostHandle) Name() string {
	if h.raw == nil {
		return ""
	}
	return abi.GoString(h.raw.Name)
}

// RequestRestart asks the host to deactivate and reactivate the plugin.
func (h *HostHandle) RequestRestart() {
	if h.raw != nil && h.raw.RequestRestart != nil {
		h.raw.RequestRestart(h.raw)
	}
}

// RequestCallback asks the host for a main-thread callback.
func (h *HostHandle) RequestCallback() {
	if h.raw != nil && h.raw.RequestCallback != nil {
		h.raw.RequestCallback(h.raw)
	}
}
