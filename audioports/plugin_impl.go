package audioports

import (
	"unsafe"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/boundary"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/plugin"
)

// PluginAudioPortsImpl is implemented by a plugin main thread that exposes
// audio ports.
type PluginAudioPortsImpl interface {
	// Count returns the number of ports in one direction.
	Count(isInput bool) uint32

	// Get describes the port at index through w. Leaving w unset tells the
	// host the port is unavailable.
	Get(index uint32, isInput bool, w *PortInfoWriter)
}

var pluginTable = abi.PluginAudioPorts{
	Count: pluginCount,
	Get:   pluginGet,
}

// PluginImplementation registers the audio ports table with a plugin
// wrapper.
var PluginImplementation = extension.Implementation[extension.PluginSide]{
	Identifiers: []string{abi.ExtAudioPorts},
	Table:       unsafe.Pointer(&pluginTable),
}

func pluginImpl(w *plugin.Wrapper) (PluginAudioPortsImpl, error) {
	impl, ok := w.MainThread().(PluginAudioPortsImpl)
	if !ok {
		return nil, ErrNotImplemented
	}
	return impl, nil
}

func pluginCount(p *abi.Plugin, isInput bool) uint32 {
	return plugin.Handle(p, "audio_ports.count", uint32(0), func(w *plugin.Wrapper) (uint32, error) {
		impl, err := pluginImpl(w)
		if err != nil {
			return 0, err
		}
		return impl.Count(isInput), nil
	})
}

func pluginGet(p *abi.Plugin, index uint32, isInput bool, info *abi.AudioPortInfo) bool {
	return plugin.Handle(p, "audio_ports.get", false, func(w *plugin.Wrapper) (bool, error) {
		if info == nil {
			return false, boundary.NullPointer("clap_audio_port_info")
		}
		impl, err := pluginImpl(w)
		if err != nil {
			return false, err
		}
		writer := newPortInfoWriter(info)
		impl.Get(index, isInput, writer)
		return writer.isSet(), nil
	})
}
