package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCapture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(prev) })

	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestRunScansAllPlugins(t *testing.T) {
	out, err := runCapture(t, "-log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "ai.opd.stereo-gain")
	assert.Contains(t, out, "ai.opd.opus-source")
	assert.Contains(t, out, "Main In")
	assert.Contains(t, out, "Sidechain")
	assert.Contains(t, out, "Opus Out")
}

func TestRunRenameWhileActive(t *testing.T) {
	out, err := runCapture(t, "-log-level", "error", "-plugin", "stereo-gain", "-activate", "-rename-sidechain", "Key")
	require.NoError(t, err)

	assert.Contains(t, out, "Key")
	assert.Contains(t, out, "active: true")
	assert.NotContains(t, out, "rejected rescans")
}

func TestRunStereoWhileActive(t *testing.T) {
	out, err := runCapture(t, "-log-level", "error", "-plugin", "opus-source", "-activate", "-stereo")
	require.NoError(t, err)

	assert.Contains(t, out, "requested a restart")
	assert.Contains(t, out, "active: false")
	assert.Contains(t, out, "stereo")
}

func TestRunWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: test-host\nlog_level: error\n"), 0o600))

	_, err := runCapture(t, "-config", path, "-plugin", "stereo-gain")
	require.NoError(t, err)
}

func TestRunErrors(t *testing.T) {
	_, err := runCapture(t, "-log-level", "error", "-plugin", "reverb")
	assert.Error(t, err)

	_, err = runCapture(t, "-log-level", "loud")
	assert.Error(t, err)

	_, err = runCapture(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runCapture(t, "-no-such-flag")
	assert.Error(t, err)
}
