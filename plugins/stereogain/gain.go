package stereogain

import (
	"errors"
	"sync"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/audioports"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/plugin"
	"github.com/sirupsen/logrus"
)

// PluginID identifies the plugin.
const PluginID = "ai.opd.stereo-gain"

// Port ids. Input and output main ports share id 0.
const (
	mainPortID      = 0
	sidechainPortID = 1
)

// ErrNotGain indicates a plugin that is not a stereo gain.
var ErrNotGain = errors.New("plugin is not a stereo gain")

var descriptor = plugin.Descriptor{
	ID:      PluginID,
	Name:    "Stereo Gain",
	Vendor:  "opd-ai",
	Version: "0.1.0",
}

// Entry creates a stereo gain instance for a host.
func Entry(h *abi.Host) (*abi.Plugin, error) {
	return plugin.New(descriptor, h, newGain, audioports.PluginImplementation)
}

// Gain is the plugin's main thread state.
type Gain struct {
	mu sync.Mutex

	host          *plugin.HostHandle
	gain          float32
	sidechainName []byte
}

func newGain(host *plugin.HostHandle) (any, error) {
	return &Gain{
		host:          host,
		gain:          1,
		sidechainName: []byte("Sidechain"),
	}, nil
}

// FromPlugin returns the gain behind a plugin created by Entry.
func FromPlugin(p *abi.Plugin) (*Gain, error) {
	w, err := plugin.FromRaw(p)
	if err != nil {
		return nil, err
	}
	g, ok := w.MainThread().(*Gain)
	if !ok {
		return nil, ErrNotGain
	}
	return g, nil
}

// SetGain sets the linear gain applied by Process.
func (g *Gain) SetGain(gain float32) {
	g.mu.Lock()
	g.gain = gain
	g.mu.Unlock()
}

// Process applies the gain to the main pair in place.
func (g *Gain) Process(left, right []float32) {
	g.mu.Lock()
	gain := g.gain
	g.mu.Unlock()

	for i := range left {
		left[i] *= gain
	}
	for i := range right {
		right[i] *= gain
	}
}

// RenameSidechain changes the sidechain input's name and tells the host.
// A name change is safe while active.
func (g *Gain) RenameSidechain(name string) {
	g.mu.Lock()
	g.sidechainName = []byte(name)
	g.mu.Unlock()

	ports, ok := extension.Negotiate(g.host.Provider(), audioports.HostExtension)
	if !ok || !ports.IsRescanFlagSupported(g.host.Raw(), audioports.RescanNames) {
		logrus.WithFields(logrus.Fields{
			"function": "Gain.RenameSidechain",
			"name":     name,
		}).Debug("Host cannot rescan port names")
		return
	}
	ports.Rescan(g.host.Raw(), audioports.RescanNames)
}

// Count implements audioports.PluginAudioPortsImpl.
func (g *Gain) Count(isInput bool) uint32 {
	if isInput {
		return 2
	}
	return 1
}

// Get implements audioports.PluginAudioPortsImpl.
func (g *Gain) Get(index uint32, isInput bool, w *audioports.PortInfoWriter) {
	switch {
	case index == 0 && isInput:
		w.Set(mainPort("Main In"))
	case index == 0:
		w.Set(mainPort("Main Out"))
	case index == 1 && isInput:
		g.mu.Lock()
		name := append([]byte(nil), g.sidechainName...)
		g.mu.Unlock()

		w.Set(&audioports.PortInfo{
			ID:           abi.NewID(sidechainPortID),
			Name:         name,
			ChannelCount: 1,
			Flags:        audioports.PortSupports64Bits,
			PortType:     audioports.Mono,
		})
	}
}

func mainPort(name string) *audioports.PortInfo {
	return &audioports.PortInfo{
		ID:             abi.NewID(mainPortID),
		Name:           []byte(name),
		ChannelCount:   2,
		Flags:          audioports.PortIsMain | audioports.PortSupports64Bits,
		PortType:       audioports.Stereo,
		InPlacePair:    abi.NewID(mainPortID),
		HasInPlacePair: true,
	}
}
