package audioports

import (
	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/extension"
)

// PluginAudioPorts is a negotiated plugin-side audio ports table, used by the
// host.
type PluginAudioPorts struct {
	table *abi.PluginAudioPorts
}

// HostAudioPorts is a negotiated host-side audio ports table, used by a
// plugin.
type HostAudioPorts struct {
	table *abi.HostAudioPorts
}

// PluginExtension negotiates a plugin's audio ports table.
var PluginExtension = extension.Descriptor[extension.PluginSide, PluginAudioPorts]{
	Identifiers: []string{abi.ExtAudioPorts},
	FromRaw: func(raw extension.RawExtension[extension.PluginSide]) PluginAudioPorts {
		return PluginAudioPorts{table: extension.Cast[abi.PluginAudioPorts](raw)}
	},
}

// HostExtension negotiates a host's audio ports table.
var HostExtension = extension.Descriptor[extension.HostSide, HostAudioPorts]{
	Identifiers: []string{abi.ExtAudioPorts},
	FromRaw: func(raw extension.RawExtension[extension.HostSide]) HostAudioPorts {
		return HostAudioPorts{table: extension.Cast[abi.HostAudioPorts](raw)}
	},
}

// IsRescanFlagSupported asks the host whether it honours flag. A host without
// the entry point supports nothing.
func (h HostAudioPorts) IsRescanFlagSupported(host *abi.Host, flag RescanType) bool {
	if h.table == nil || h.table.IsRescanFlagSupported == nil {
		return false
	}
	return h.table.IsRescanFlagSupported(host, flag.Bits())
}

// Rescan tells the host that the facets in flags changed. It is a no-op when
// the host lacks the entry point.
func (h HostAudioPorts) Rescan(host *abi.Host, flags RescanType) {
	if h.table == nil || h.table.Rescan == nil {
		return
	}
	h.table.Rescan(host, flags.Bits())
}

// Count returns the number of ports in one direction, or 0 when the plugin
// lacks the entry point.
func (p PluginAudioPorts) Count(plugin *abi.Plugin, isInput bool) uint32 {
	if p.table == nil || p.table.Count == nil {
		return 0
	}
	return p.table.Count(plugin, isInput)
}

// Get asks the plugin to describe one port, decoding into buf. It reports
// false when the plugin lacks the entry point, declines the index, or
// returns a record with the sentinel id. buf is not read unless the plugin
// reports success. The result aliases buf until the next call with it.
func (p PluginAudioPorts) Get(plugin *abi.Plugin, index uint32, isInput bool, buf *PortInfoBuffer) (PortInfo, bool) {
	if p.table == nil || p.table.Get == nil || buf == nil {
		return PortInfo{}, false
	}
	if !p.table.Get(plugin, index, isInput, &buf.raw) {
		return PortInfo{}, false
	}
	return PortInfoFromRaw(&buf.raw)
}
