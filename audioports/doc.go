// Package audioports implements the audio ports extension: how a plugin
// describes its audio inputs and outputs to a host, and how it tells the host
// that the description changed.
//
// # Records
//
// PortInfo is the safe view of abi.AudioPortInfo. PortInfoFromRaw decodes a
// record; PortInfoWriter encodes one into a destination supplied by the
// host, at most filling it, never reading it.
//
// # Plugin side
//
// A plugin whose main thread implements PluginAudioPortsImpl registers
// PluginImplementation with its wrapper:
//
//	func (m *mainThread) Count(isInput bool) uint32 { return 1 }
//
//	func (m *mainThread) Get(index uint32, isInput bool, w *audioports.PortInfoWriter) {
//	    if index != 0 {
//	        return // the host sees false
//	    }
//	    w.Set(&audioports.PortInfo{
//	        ID:           abi.NewID(0),
//	        Name:         []byte("Stereo Out"),
//	        ChannelCount: 2,
//	        Flags:        audioports.PortIsMain,
//	        PortType:     audioports.Stereo,
//	    })
//	}
//
// and notifies the host through the negotiated HostAudioPorts:
//
//	if ports, ok := extension.Negotiate(handle.Provider(), audioports.HostExtension); ok {
//	    ports.Rescan(handle.Raw(), audioports.RescanNames)
//	}
//
// # Host side
//
// Tracker implements HostAudioPortsImpl for one loaded plugin. It scans the
// plugin's ports, validates them and applies the rescan policy: a names-only
// change is refreshed immediately, every other change requires the plugin
// to be deactivated (RescanType.RequiresDeactivate).
package audioports
