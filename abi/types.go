package abi

import "unsafe"

// NameSize is the capacity of fixed-size name buffers.
const NameSize = 256

// Extension identifiers.
const (
	ExtAudioPorts = "clap.audio-ports"
)

// Well-known audio port type strings.
const (
	PortMono      = "mono"
	PortStereo    = "stereo"
	PortSurround  = "surround"
	PortAmbisonic = "ambisonic"
)

// PluginDescriptor describes a plugin to the host.
type PluginDescriptor struct {
	ID      *byte
	Name    *byte
	Vendor  *byte
	Version *byte
}

// Plugin is the table a plugin exposes to its host.
type Plugin struct {
	Desc       *PluginDescriptor
	PluginData unsafe.Pointer

	Init         func(p *Plugin) bool
	Destroy      func(p *Plugin)
	Activate     func(p *Plugin, sampleRate float64, minFrames, maxFrames uint32) bool
	Deactivate   func(p *Plugin)
	GetExtension func(p *Plugin, id *byte) unsafe.Pointer
}

// Host is the table a host exposes to each plugin it loads.
type Host struct {
	Name     *byte
	Vendor   *byte
	Version  *byte
	HostData unsafe.Pointer

	GetExtension    func(h *Host, id *byte) unsafe.Pointer
	RequestRestart  func(h *Host)
	RequestCallback func(h *Host)
}

// AudioPortInfo is the raw audio port record. Field order is part of the ABI.
type AudioPortInfo struct {
	ID           uint32
	Name         [NameSize]byte
	Flags        uint32
	ChannelCount uint32
	PortType     *byte
	InPlacePair  uint32
}

// PluginAudioPorts is the plugin-side audio ports extension table.
type PluginAudioPorts struct {
	Count func(p *Plugin, isInput bool) uint32
	Get   func(p *Plugin, index uint32, isInput bool, info *AudioPortInfo) bool
}

// HostAudioPorts is the host-side audio ports extension table.
type HostAudioPorts struct {
	IsRescanFlagSupported func(h *Host, flag uint32) bool
	Rescan                func(h *Host, flags uint32)
}
