package host

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/boundary"
	"github.com/opd-ai/clapext/extension"
	"github.com/sirupsen/logrus"
)

// Entry creates a plugin instance bound to the given host table.
type Entry func(h *abi.Host) (*abi.Plugin, error)

// LoadHook is implemented by host main threads that need the session once
// the plugin is initialized, e.g. to negotiate plugin extensions.
type LoadHook interface {
	PluginLoaded(s *Session) error
}

// Session is the host side of one loaded plugin instance.
type Session struct {
	id         uuid.UUID
	opts       *Options
	raw        abi.Host
	registry   *extension.Registry[extension.HostSide]
	mainThread any

	plugin   *abi.Plugin
	provider *extension.Provider[extension.PluginSide]

	active            atomic.Bool
	restartRequested  atomic.Bool
	callbackRequested atomic.Bool
}

// NewSession creates a session whose host table answers for exts and whose
// extension glue dispatches to mainThread.
func NewSession(opts *Options, mainThread any, exts ...extension.Implementation[extension.HostSide]) (*Session, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		id:         uuid.New(),
		opts:       opts,
		registry:   extension.NewRegistry(exts...),
		mainThread: mainThread,
	}

	name, err := abi.CString(opts.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: name: %v", ErrInvalidOptions, err)
	}
	vendor, err := abi.CString(opts.Vendor)
	if err != nil {
		return nil, fmt.Errorf("%w: vendor: %v", ErrInvalidOptions, err)
	}
	version, err := abi.CString(opts.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrInvalidOptions, err)
	}

	s.raw = abi.Host{
		Name:            name,
		Vendor:          vendor,
		Version:         version,
		HostData:        unsafe.Pointer(s),
		GetExtension:    hostGetExtension,
		RequestRestart:  hostRequestRestart,
		RequestCallback: hostRequestCallback,
	}

	boundary.NewLogger("host", "NewSession").
		WithFields(logrus.Fields{"session_id": s.id.String(), "extensions": s.registry.Identifiers()}).
		Debug("Host session created")

	return s, nil
}

// FromRaw recovers the session behind a host table built by NewSession.
func FromRaw(h *abi.Host) (*Session, error) {
	if h == nil {
		return nil, boundary.NullPointer("clap_host")
	}
	if h.HostData == nil {
		return nil, boundary.NullPointer("clap_host.host_data")
	}
	return (*Session)(h.HostData), nil
}

// Handle runs fn for the session behind raw on behalf of a plugin. Errors
// and panics yield fallback.
func Handle[T any](raw *abi.Host, op string, fallback T, fn func(s *Session) (T, error)) T {
	return boundary.Guard(op, fallback, func() (T, error) {
		s, err := FromRaw(raw)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(s)
	})
}

// Load creates and initializes the plugin, then runs the main thread's
// LoadHook if it has one. When the hook fails the plugin is destroyed and the
// session can load again.
func (s *Session) Load(entry Entry) error {
	if s.plugin != nil {
		return ErrAlreadyLoaded
	}

	p, err := entry(&s.raw)
	if err != nil {
		return fmt.Errorf("create plugin: %w", err)
	}
	if p == nil {
		return fmt.Errorf("create plugin: %w", boundary.NullPointer("clap_plugin"))
	}
	if p.Init == nil || !p.Init(p) {
		if p.Destroy != nil {
			p.Destroy(p)
		}
		return ErrPluginInit
	}

	s.plugin = p
	s.provider = extension.NewPluginProvider(p, s.opts.NegotiationCacheSize)

	boundary.NewLogger("host", "Session.Load").
		WithFields(logrus.Fields{"session_id": s.id.String(), "plugin_id": s.PluginID()}).
		Info("Plugin loaded")

	if hook, ok := s.mainThread.(LoadHook); ok {
		if err := hook.PluginLoaded(s); err != nil {
			s.Close()
			return fmt.Errorf("load hook: %w", err)
		}
	}
	return nil
}

// Activate activates the plugin with the configured audio settings.
func (s *Session) Activate() error {
	if s.plugin == nil {
		return ErrNoPlugin
	}
	if s.active.Load() {
		return nil
	}
	if s.plugin.Activate == nil || !s.plugin.Activate(s.plugin, s.opts.SampleRate, s.opts.MinFrames, s.opts.MaxFrames) {
		return ErrActivate
	}
	s.active.Store(true)
	return nil
}

// Deactivate deactivates the plugin. The session is marked inactive before
// the plugin is told, so changes the plugin reports while deactivating are
// observed as happening on a deactivated plugin.
func (s *Session) Deactivate() {
	if s.plugin == nil || !s.active.Load() {
		return
	}
	s.active.Store(false)
	if s.plugin.Deactivate != nil {
		s.plugin.Deactivate(s.plugin)
	}
}

// Close deactivates and destroys the plugin and ends the session.
func (s *Session) Close() {
	if s.plugin == nil {
		return
	}
	s.Deactivate()
	if s.plugin.Destroy != nil {
		s.plugin.Destroy(s.plugin)
	}
	s.provider.Purge()
	s.plugin = nil
	s.provider = nil

	boundary.NewLogger("host", "Session.Close").
		WithField("session_id", s.id.String()).
		Info("Plugin session closed")
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id.String() }

// Options returns the session options.
func (s *Session) Options() *Options { return s.opts }

// Raw returns the host table handed to the plugin.
func (s *Session) Raw() *abi.Host { return &s.raw }

// Plugin returns the loaded plugin table, or nil.
func (s *Session) Plugin() *abi.Plugin { return s.plugin }

// Provider negotiates plugin extensions; nil before Load.
func (s *Session) Provider() *extension.Provider[extension.PluginSide] { return s.provider }

// MainThread returns the host main thread state.
func (s *Session) MainThread() any { return s.mainThread }

// IsActive reports whether the plugin is active.
func (s *Session) IsActive() bool { return s.active.Load() }

// PluginID returns the loaded plugin's id, or "".
func (s *Session) PluginID() string {
	if s.plugin == nil || s.plugin.Desc == nil {
		return ""
	}
	return abi.GoString(s.plugin.Desc.ID)
}

// TakeRestartRequest reports and clears a pending restart request.
func (s *Session) TakeRestartRequest() bool { return s.restartRequested.Swap(false) }

// TakeCallbackRequest reports and clears a pending callback request.
func (s *Session) TakeCallbackRequest() bool { return s.callbackRequested.Swap(false) }

func hostGetExtension(h *abi.Host, id *byte) unsafe.Pointer {
	return Handle(h, "host.get_extension", unsafe.Pointer(nil), func(s *Session) (unsafe.Pointer, error) {
		return s.registry.LookupRaw(id), nil
	})
}

func hostRequestRestart(h *abi.Host) {
	Handle(h, "host.request_restart", struct{}{}, func(s *Session) (struct{}, error) {
		s.restartRequested.Store(true)
		return struct{}{}, nil
	})
}

func hostRequestCallback(h *abi.Host) {
	Handle(h, "host.request_callback", struct{}{}, func(s *Session) (struct{}, error) {
		s.callbackRequested.Store(true)
		return struct{}{}, nil
	})
}
