package stereogain

import (
	"testing"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/audioports"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadGain(t *testing.T, opts *host.Options) (*host.Session, *audioports.Tracker, *Gain) {
	t.Helper()
	if opts == nil {
		opts = host.NewOptions()
	}
	tracker, err := audioports.NewTracker(opts)
	require.NoError(t, err)
	s, err := host.NewSession(opts, tracker, audioports.HostImplementation)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.Load(Entry))
	g, err := FromPlugin(s.Plugin())
	require.NoError(t, err)
	return s, tracker, g
}

func TestPortLayout(t *testing.T) {
	_, tracker, _ := loadGain(t, nil)
	require.NoError(t, tracker.Err())
	list := tracker.Ports()

	require.Len(t, list.Inputs, 2)
	require.Len(t, list.Outputs, 1)

	in, ok := list.Main(true)
	require.True(t, ok)
	out, ok := list.Main(false)
	require.True(t, ok)
	assert.Equal(t, "Main In", in.DisplayName())
	assert.Equal(t, "Main Out", out.DisplayName())
	assert.True(t, in.HasInPlacePair)
	assert.Equal(t, out.ID, in.InPlacePair)
	assert.True(t, out.PortType.Equal(audioports.Stereo))

	side := list.Inputs[1]
	assert.Equal(t, abi.NewID(sidechainPortID), side.ID)
	assert.False(t, side.Flags.Contains(audioports.PortIsMain))
	assert.False(t, side.HasInPlacePair)
}

func TestRenameSidechainWhileActive(t *testing.T) {
	s, tracker, g := loadGain(t, nil)
	require.NoError(t, s.Activate())

	g.RenameSidechain("Key Input")

	side, ok := tracker.Ports().Find(true, abi.NewID(sidechainPortID))
	require.True(t, ok)
	assert.Equal(t, "Key Input", side.DisplayName())
	assert.Zero(t, tracker.Rejected())
	assert.Equal(t, 2, tracker.Scans())
}

func TestRenameWithoutNameRescanSupport(t *testing.T) {
	opts := host.NewOptions()
	opts.SupportedRescanFlags = []string{"list"}
	_, tracker, g := loadGain(t, opts)

	g.RenameSidechain("Key Input")
	assert.Equal(t, 1, tracker.Scans())
	assert.Equal(t, "Sidechain", tracker.Ports().Inputs[1].DisplayName())
}

func TestProcessInPlace(t *testing.T) {
	_, _, g := loadGain(t, nil)
	g.SetGain(0.5)

	left := []float32{1, -2}
	right := []float32{4}
	g.Process(left, right)
	assert.Equal(t, []float32{0.5, -1}, left)
	assert.Equal(t, []float32{2}, right)
}

func TestGetOutOfRange(t *testing.T) {
	p, err := Entry(nil)
	require.NoError(t, err)
	require.True(t, p.Init(p))

	ports, ok := extension.Negotiate(extension.NewPluginProvider(p, 0), audioports.PluginExtension)
	require.True(t, ok)

	buf := audioports.NewPortInfoBuffer()
	_, ok = ports.Get(p, 2, true, buf)
	assert.False(t, ok)
	_, ok = ports.Get(p, 1, false, buf)
	assert.False(t, ok)
	_, ok = ports.Get(p, 1, true, buf)
	assert.True(t, ok)
}
