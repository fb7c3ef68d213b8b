package opussource

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/audioports"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/plugin"
	"github.com/pion/opus"
	"github.com/sirupsen/logrus"
)

// PluginID identifies the plugin.
const PluginID = "ai.opd.opus-source"

// decodeBufferSize holds 120 ms of 48 kHz stereo 16-bit PCM.
const decodeBufferSize = 5760 * 2 * 2

// layoutChange is what a mono/stereo flip changes on the output port.
const layoutChange = audioports.RescanChannelCount | audioports.RescanPortType

var (
	// ErrEmptyPacket indicates an empty Opus packet.
	ErrEmptyPacket = errors.New("empty opus packet")

	// ErrNotSource indicates a plugin that is not an Opus source.
	ErrNotSource = errors.New("plugin is not an opus source")
)

var descriptor = plugin.Descriptor{
	ID:      PluginID,
	Name:    "Opus Source",
	Vendor:  "opd-ai",
	Version: "0.1.0",
}

// Entry creates an Opus source instance for a host.
func Entry(h *abi.Host) (*abi.Plugin, error) {
	return plugin.New(descriptor, h, newSource, audioports.PluginImplementation)
}

// Source is the plugin's main thread state.
type Source struct {
	mu sync.Mutex

	host    *plugin.HostHandle
	decoder opus.Decoder
	pcm     []byte

	channels uint32
	pending  uint32
	active   bool

	frames    int
	bandwidth opus.Bandwidth
}

func newSource(host *plugin.HostHandle) (any, error) {
	return &Source{
		host:     host,
		decoder:  opus.NewDecoder(),
		pcm:      make([]byte, decodeBufferSize),
		channels: 1,
	}, nil
}

// FromPlugin returns the source behind a plugin created by Entry.
func FromPlugin(p *abi.Plugin) (*Source, error) {
	w, err := plugin.FromRaw(p)
	if err != nil {
		return nil, err
	}
	s, ok := w.MainThread().(*Source)
	if !ok {
		return nil, ErrNotSource
	}
	return s, nil
}

// Feed decodes one Opus packet and follows its channel layout.
func (s *Source) Feed(packet []byte) error {
	if len(packet) == 0 {
		return ErrEmptyPacket
	}

	s.mu.Lock()
	bandwidth, isStereo, err := s.decoder.Decode(packet, s.pcm)
	if err == nil {
		s.frames++
		s.bandwidth = bandwidth
	}
	s.mu.Unlock()

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "Source.Feed",
			"packet_size": len(packet),
			"error":       err.Error(),
		}).Warn("Failed to decode Opus packet")
		return fmt.Errorf("decode opus packet: %w", err)
	}

	s.observe(isStereo)
	return nil
}

// SetStereo switches the output layout as a decoded packet of that layout
// would.
func (s *Source) SetStereo(isStereo bool) {
	s.observe(isStereo)
}

// observe records the layout of the latest decoded packet.
func (s *Source) observe(isStereo bool) {
	channels := uint32(1)
	if isStereo {
		channels = 2
	}

	s.mu.Lock()
	if channels == s.channels {
		s.pending = 0
		s.mu.Unlock()
		return
	}
	if s.active {
		first := s.pending == 0
		s.pending = channels
		s.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"function": "Source.observe",
			"channels": channels,
		}).Info("Channel layout changed while active, requesting restart")
		if first {
			s.host.RequestRestart()
		}
		return
	}
	s.channels = channels
	s.mu.Unlock()

	s.notify(layoutChange)
}

// notify tells the host which facets of the port list changed. A host that
// cannot rescan them is asked to restart the plugin instead.
func (s *Source) notify(flags audioports.RescanType) {
	ports, ok := extension.Negotiate(s.host.Provider(), audioports.HostExtension)
	if !ok {
		s.host.RequestRestart()
		return
	}

	raw := s.host.Raw()
	for _, flag := range []audioports.RescanType{audioports.RescanChannelCount, audioports.RescanPortType} {
		if flags.Contains(flag) && !ports.IsRescanFlagSupported(raw, flag) {
			s.host.RequestRestart()
			return
		}
	}
	ports.Rescan(raw, flags)
}

// Activate implements plugin.Activator.
func (s *Source) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	return nil
}

// Deactivate applies a held back layout change and reports it to the host.
func (s *Source) Deactivate() {
	s.mu.Lock()
	s.active = false
	pending := s.pending
	s.pending = 0
	if pending != 0 {
		s.channels = pending
	}
	s.mu.Unlock()

	if pending != 0 {
		s.notify(layoutChange)
	}
}

// Channels returns the channel count the output port reports.
func (s *Source) Channels() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels
}

// Frames returns the number of decoded packets.
func (s *Source) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Count implements audioports.PluginAudioPortsImpl.
func (s *Source) Count(isInput bool) uint32 {
	if isInput {
		return 0
	}
	return 1
}

// Get implements audioports.PluginAudioPortsImpl.
func (s *Source) Get(index uint32, isInput bool, w *audioports.PortInfoWriter) {
	if isInput || index != 0 {
		return
	}

	s.mu.Lock()
	channels := s.channels
	s.mu.Unlock()

	portType, _ := audioports.PortTypeFromChannelCount(channels)
	w.Set(&audioports.PortInfo{
		ID:           abi.NewID(0),
		Name:         []byte("Opus Out"),
		ChannelCount: channels,
		Flags:        audioports.PortIsMain,
		PortType:     portType,
	})
}

// Bandwidth returns the bandwidth of the last decoded packet.
func (s *Source) Bandwidth() opus.Bandwidth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bandwidth
}
