package host

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Options configures a host session.
type Options struct {
	// Name, Vendor and Version are reported to plugins.
	Name    string `yaml:"name"`
	Vendor  string `yaml:"vendor"`
	Version string `yaml:"version"`

	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`

	// NegotiationCacheSize bounds remembered extension lookups per session;
	// 0 disables the cache.
	NegotiationCacheSize int `yaml:"negotiation_cache_size"`

	// SupportedRescanFlags names the audio port rescan flags the host honours.
	SupportedRescanFlags []string `yaml:"supported_rescan_flags"`

	// MaxPortsPerDirection bounds port enumeration during a scan.
	MaxPortsPerDirection int `yaml:"max_ports_per_direction"`

	// Activation parameters.
	SampleRate float64 `yaml:"sample_rate"`
	MinFrames  uint32  `yaml:"min_frames"`
	MaxFrames  uint32  `yaml:"max_frames"`
}

// NewOptions returns options with defaults suitable for most hosts.
func NewOptions() *Options {
	return &Options{
		Name:                 "clapext-host",
		Vendor:               "opd-ai",
		Version:              "0.1.0",
		LogLevel:             "info",
		NegotiationCacheSize: 32,
		SupportedRescanFlags: []string{"names", "flags", "channel_count", "port_type", "in_place_pair", "list"},
		MaxPortsPerDirection: 1024,
		SampleRate:           48000,
		MinFrames:            1,
		MaxFrames:            4096,
	}
}

// LoadOptions reads YAML options from path on top of NewOptions defaults.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	opts := NewOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks option values.
func (o *Options) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidOptions)
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.NegotiationCacheSize < 0 {
		return fmt.Errorf("%w: negotiation_cache_size must not be negative", ErrInvalidOptions)
	}
	if o.MaxPortsPerDirection < 0 {
		return fmt.Errorf("%w: max_ports_per_direction must not be negative", ErrInvalidOptions)
	}
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalidOptions)
	}
	if o.MinFrames > o.MaxFrames {
		return fmt.Errorf("%w: min_frames %d exceeds max_frames %d", ErrInvalidOptions, o.MinFrames, o.MaxFrames)
	}
	return nil
}

// ApplyLogLevel sets the global logrus level from LogLevel.
func (o *Options) ApplyLogLevel() error {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	logrus.SetLevel(level)
	return nil
}
