package opussource

import (
	"testing"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/audioports"
	"github.com/opd-ai/clapext/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSource(t *testing.T, opts *host.Options) (*host.Session, *audioports.Tracker, *Source) {
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
	src, err := FromPlugin(s.Plugin())
	require.NoError(t, err)
	return s, tracker, src
}

func mainOutput(t *testing.T, tracker *audioports.Tracker) audioports.PortInfo {
	t.Helper()
	out, ok := tracker.Ports().Main(false)
	require.True(t, ok)
	return out
}

func TestInitialLayout(t *testing.T) {
	_, tracker, src := loadSource(t, nil)

	assert.Empty(t, tracker.Ports().Inputs)
	out := mainOutput(t, tracker)
	assert.Equal(t, "Opus Out", out.DisplayName())
	assert.Equal(t, uint32(1), out.ChannelCount)
	assert.True(t, out.PortType.Equal(audioports.Mono))
	assert.Equal(t, uint32(1), src.Channels())
}

func TestLayoutFollowsStreamWhileInactive(t *testing.T) {
	_, tracker, src := loadSource(t, nil)

	src.observe(true)
	out := mainOutput(t, tracker)
	assert.Equal(t, uint32(2), out.ChannelCount)
	assert.True(t, out.PortType.Equal(audioports.Stereo))

	src.observe(true)
	assert.Equal(t, 2, tracker.Scans())
}

func TestLayoutChangeDeferredWhileActive(t *testing.T) {
	s, tracker, src := loadSource(t, nil)
	require.NoError(t, s.Activate())

	src.observe(true)
	assert.True(t, s.TakeRestartRequest())
	assert.Equal(t, uint32(1), src.Channels())
	assert.Equal(t, uint32(1), mainOutput(t, tracker).ChannelCount)
	assert.Zero(t, tracker.Rejected())

	src.observe(true)
	assert.False(t, s.TakeRestartRequest())

	s.Deactivate()
	assert.Equal(t, uint32(2), src.Channels())
	out := mainOutput(t, tracker)
	assert.Equal(t, uint32(2), out.ChannelCount)
	assert.True(t, out.PortType.Equal(audioports.Stereo))
}

func TestFlipBackCancelsPendingChange(t *testing.T) {
	s, tracker, src := loadSource(t, nil)
	require.NoError(t, s.Activate())

	src.observe(true)
	src.observe(false)
	s.Deactivate()

	assert.Equal(t, uint32(1), mainOutput(t, tracker).ChannelCount)
	assert.Equal(t, 1, tracker.Scans())
}

func TestHostWithoutLayoutRescanGetsRestartRequest(t *testing.T) {
	opts := host.NewOptions()
	opts.SupportedRescanFlags = []string{"names"}
	s, tracker, src := loadSource(t, opts)

	src.observe(true)
	assert.True(t, s.TakeRestartRequest())
	assert.Equal(t, 1, tracker.Scans())
}

func TestFeed(t *testing.T) {
	_, _, src := loadSource(t, nil)

	assert.ErrorIs(t, src.Feed(nil), ErrEmptyPacket)
	assert.Zero(t, src.Frames())
}

func TestFromPlugin(t *testing.T) {
	_, err := FromPlugin(nil)
	assert.Error(t, err)

	p, err := Entry(nil)
	require.NoError(t, err)
	_, err = FromPlugin(p)
	assert.ErrorIs(t, err, ErrNotSource)

	require.True(t, p.Init(p))
	src, err := FromPlugin(p)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), src.Count(true))
	assert.Equal(t, PluginID, abi.GoString(p.Desc.ID))
}
