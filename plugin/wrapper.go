package plugin

import (
	"fmt"
	"unsafe"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/boundary"
	"github.com/opd-ai/clapext/extension"
	"github.com/sirupsen/logrus"
)

// Descriptor identifies a plugin to its host.
type Descriptor struct {
	ID      string
	Name    string
	Vendor  string
	Version string
}

// Factory creates the plugin's main thread state when the host calls init.
type Factory func(host *HostHandle) (any, error)

// Activator is implemented by main threads that prepare for processing.
type Activator interface {
	Activate(sampleRate float64, minFrames, maxFrames uint32) error
}

// Deactivator is implemented by main threads that react to deactivation.
type Deactivator interface {
	Deactivate()
}

// Destroyer is implemented by main threads that release resources.
type Destroyer interface {
	Destroy()
}

// Wrapper owns the raw table handed to the host and the state behind it.
type Wrapper struct {
	raw        abi.Plugin
	desc       abi.PluginDescriptor
	info       Descriptor
	host       *HostHandle
	registry   *extension.Registry[extension.PluginSide]
	factory    Factory
	mainThread any
	active     bool
}

// New builds the raw plugin table for a host. The main thread is created by
// factory on init. exts lists the extension tables the plugin implements.
func New(desc Descriptor, host *abi.Host, factory Factory, exts ...extension.Implementation[extension.PluginSide]) (*abi.Plugin, error) {
	if desc.ID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidDescriptor)
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: nil factory", ErrInvalidDescriptor)
	}

	w := &Wrapper{
		info:     desc,
		host:     newHostHandle(host),
		registry: extension.NewRegistry(exts...),
		factory:  factory,
	}

	fields := []struct {
		dst **byte
		val string
	}{
		{&w.desc.ID, desc.ID},
		{&w.desc.Name, desc.Name},
		{&w.desc.Vendor, desc.Vendor},
		{&w.desc.Version, desc.Version},
	}
	for _, f := range fields {
		p, err := abi.CString(f.val)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
		*f.dst = p
	}

	w.raw = abi.Plugin{
		Desc:         &w.desc,
		PluginData:   unsafe.Pointer(w),
		Init:         pluginInit,
		Destroy:      pluginDestroy,
		Activate:     pluginActivate,
		Deactivate:   pluginDeactivate,
		GetExtension: pluginGetExtension,
	}

	boundary.NewLogger("plugin", "New").
		WithFields(logrus.Fields{"plugin_id": desc.ID, "extensions": w.registry.Identifiers()}).
		Debug("Plugin table created")

	return &w.raw, nil
}

// FromRaw recovers the wrapper behind a table built by New.
func FromRaw(p *abi.Plugin) (*Wrapper, error) {
	if p == nil {
		return nil, boundary.NullPointer("clap_plugin")
	}
	if p.PluginData == nil {
		return nil, boundary.NullPointer("clap_plugin.plugin_data")
	}
	return (*Wrapper)(p.PluginData), nil
}

// Handle runs fn for an initialized plugin on behalf of the host. Errors and
// panics yield fallback.
func Handle[T any](raw *abi.Plugin, op string, fallback T, fn func(w *Wrapper) (T, error)) T {
	return boundary.Guard(op, fallback, func() (T, error) {
		var zero T
		w, err := FromRaw(raw)
		if err != nil {
			return zero, err
		}
		if w.mainThread == nil {
			return zero, ErrNotInitialized
		}
		return fn(w)
	})
}

// MainThread returns the state created by the factory, or nil before init.
func (w *Wrapper) MainThread() any {
	return w.mainThread
}

// Host returns the plugin's view of its host.
func (w *Wrapper) Host() *HostHandle {
	return w.host
}

// Descriptor returns the descriptor the plugin was created with.
func (w *Wrapper) Descriptor() Descriptor {
	return w.info
}

// IsActive reports whether the host activated the plugin.
func (w *Wrapper) IsActive() bool {
	return w.active
}

func pluginInit(p *abi.Plugin) bool {
	return boundary.Guard("plugin.init", false, func() (bool, error) {
		w, err := FromRaw(p)
		if err != nil {
			return false, err
		}
		if w.mainThread != nil {
			return true, nil
		}

		mt, err := w.factory(w.host)
		if err != nil {
			return false, fmt.Errorf("create main thread: %w", err)
		}
		w.mainThread = mt

		boundary.NewLogger("plugin", "init").
			WithFields(logrus.Fields{"plugin_id": w.info.ID, "host": w.host.Name()}).
			Info("Plugin initialized")
		return true, nil
	})
}

func pluginDestroy(p *abi.Plugin) {
	boundary.Do("plugin.destroy", func() error {
		w, err := FromRaw(p)
		if err != nil {
			return err
		}
		if w.active {
			if d, ok := w.mainThread.(Deactivator); ok {
				d.Deactivate()
			}
			w.active = false
		}
		if d, ok := w.mainThread.(Destroyer); ok {
			d.Destroy()
		}
		w.mainThread = nil
		w.host.Provider().Purge()
		return nil
	})
}

func pluginActivate(p *abi.Plugin, sampleRate float64, minFrames, maxFrames uint32) bool {
	return Handle(p, "plugin.activate", false, func(w *Wrapper) (bool, error) {
		if w.active {
			return false, ErrAlreadyActive
		}
		if a, ok := w.mainThread.(Activator); ok {
			if err := a.Activate(sampleRate, minFrames, maxFrames); err != nil {
				return false, err
			}
		}
		w.active = true
		return true, nil
	})
}

func pluginDeactivate(p *abi.Plugin) {
	Handle(p, "plugin.deactivate", struct{}{}, func(w *Wrapper) (struct{}, error) {
		if !w.active {
			return struct{}{}, nil
		}
		w.active = false
		if d, ok := w.mainThread.(Deactivator); ok {
			d.Deactivate()
		}
		return struct{}{}, nil
	})
}

func pluginGetExtension(p *abi.Plugin, id *byte) unsafe.Pointer {
	return boundary.Guard("plugin.get_extension", unsafe.Pointer(nil), func() (unsafe.Pointer, error) {
		w, err := FromRaw(p)
		if err != nil {
			return nil, err
		}
		return w.registry.LookupRaw(id), nil
	})
}
