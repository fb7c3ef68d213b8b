package audioports

import (
	"sync"
	"testing"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/plugin"
	"github.com/stretchr/testify/require"
)

// fakePorts is a plugin main thread with a mutable port layout.
type fakePorts struct {
	mu      sync.Mutex
	inputs  []PortInfo
	outputs []PortInfo
	unset   map[uint32]bool
	panicOn string
	handle  *plugin.HostHandle

	// onCount runs at the start of every Count call, outside mu.
	onCount func(isInput bool)
}

func (f *fakePorts) Count(isInput bool) uint32 {
	if f.onCount != nil {
		f.onCount(isInput)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOn == "count" {
		panic("count exploded")
	}
	if isInput {
		return uint32(len(f.inputs))
	}
	return uint32(len(f.outputs))
}

func (f *fakePorts) Get(index uint32, isInput bool, w *PortInfoWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panicOn == "get" {
		panic("get exploded")
	}
	ports := f.outputs
	if isInput {
		ports = f.inputs
	}
	if int(index) >= len(ports) || f.unset[index] {
		return
	}
	w.Set(&ports[index])
}

func (f *fakePorts) update(fn func(f *fakePorts)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}

// notify reports a change to the host, as a plugin would.
func (f *fakePorts) notify(flags RescanType) bool {
	ports, ok := extension.Negotiate(f.handle.Provider(), HostExtension)
	if !ok {
		return false
	}
	ports.Rescan(f.handle.Raw(), flags)
	return true
}

func stereoLayout() *fakePorts {
	return &fakePorts{
		inputs: []PortInfo{
			{ID: abi.NewID(0), Name: []byte("In"), ChannelCount: 2, Flags: PortIsMain, PortType: Stereo, InPlacePair: abi.NewID(0), HasInPlacePair: true},
			{ID: abi.NewID(1), Name: []byte("Sidechain"), ChannelCount: 1, PortType: Mono},
		},
		outputs: []PortInfo{
			{ID: abi.NewID(0), Name: []byte("Out"), ChannelCount: 2, Flags: PortIsMain, PortType: Stereo, InPlacePair: abi.NewID(0), HasInPlacePair: true},
		},
	}
}

func fakeEntry(mt *fakePorts, exts ...extension.Implementation[extension.PluginSide]) func(h *abi.Host) (*abi.Plugin, error) {
	return func(h *abi.Host) (*abi.Plugin, error) {
		return plugin.New(plugin.Descriptor{ID: "test.ports", Name: "Ports"}, h, func(handle *plugin.HostHandle) (any, error) {
			mt.handle = handle
			return mt, nil
		}, exts...)
	}
}

// newFakePlugin creates and initializes a plugin without a host.
func newFakePlugin(t *testing.T, mt any) *abi.Plugin {
	t.Helper()
	p, err := plugin.New(plugin.Descriptor{ID: "test.ports"}, nil, func(*plugin.HostHandle) (any, error) {
		return mt, nil
	}, PluginImplementation)
	require.NoError(t, err)
	require.True(t, p.Init(p))
	return p
}

func pluginPorts(t *testing.T, p *abi.Plugin) PluginAudioPorts {
	t.Helper()
	ports, ok := extension.Negotiate(extension.NewPluginProvider(p, 0), PluginExtension)
	require.True(t, ok)
	return ports
}
