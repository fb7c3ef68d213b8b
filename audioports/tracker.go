package audioports

import (
	"fmt"
	"sync"

	"github.com/opd-ai/clapext/boundary"
	"github.com/opd-ai/clapext/extension"
	"github.com/opd-ai/clapext/host"
	"github.com/sirupsen/logrus"
)

// Tracker is a host main thread that keeps a validated view of one plugin's
// ports and applies rescan notifications to it.
//
// The tracker never holds its lock while calling into the plugin, so a
// plugin may report a change from inside count or get. Such a report is
// queued and the scan runs again once the current one finishes.
type Tracker struct {
	mu sync.Mutex

	supported RescanType
	maxPorts  int

	session  *host.Session
	ports    PluginAudioPorts
	hasPorts bool

	scanning bool
	rerun    bool
	queued   RescanType

	list     *PortList
	lastErr  error
	rescans  int
	rejected RescanType
}

// NewTracker creates a tracker that honours the rescan flags named in opts.
// A nil flag list honours every flag.
func NewTracker(opts *host.Options) (*Tracker, error) {
	if opts == nil {
		opts = host.NewOptions()
	}
	supported := AllRescanTypes()
	if opts.SupportedRescanFlags != nil {
		parsed, err := ParseRescanTypes(opts.SupportedRescanFlags)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", host.ErrInvalidOptions, err)
		}
		supported = parsed
	}
	return &Tracker{
		supported: supported,
		maxPorts:  opts.MaxPortsPerDirection,
		list:      &PortList{},
	}, nil
}

// PluginLoaded negotiates the plugin's audio ports and takes the first scan.
// A plugin without audio ports has an empty port list.
func (t *Tracker) PluginLoaded(s *host.Session) error {
	ports, ok := FromSession(s)

	t.mu.Lock()
	t.session = s
	t.ports, t.hasPorts = ports, ok
	t.list = &PortList{}
	t.mu.Unlock()

	if !ok {
		boundary.NewLogger("audioports", "Tracker.PluginLoaded").
			WithFields(logrus.Fields{
				"session_id": s.ID(),
				"plugin_id":  s.PluginID(),
			}).
			Info("Plugin does not provide audio ports")
		return nil
	}
	return t.refresh(0)
}

// FromSession negotiates the audio ports table of the session's plugin.
func FromSession(s *host.Session) (PluginAudioPorts, bool) {
	if s == nil || s.Provider() == nil {
		return PluginAudioPorts{}, false
	}
	return extension.Negotiate(s.Provider(), PluginExtension)
}

// IsRescanFlagSupported reports whether flag is among the configured flags.
func (t *Tracker) IsRescanFlagSupported(flag RescanType) bool {
	return flag != 0 && t.supported.Contains(flag)
}

// Rescan applies a plugin's change notification.
//
// Unsupported flags are ignored. A names-only change is refreshed at once.
// Any other change reported while the plugin is active breaks the contract
// and is rejected; otherwise the port list is rescanned.
func (t *Tracker) Rescan(flags RescanType) {
	logger := boundary.NewLogger("audioports", "Tracker.Rescan").WithField("flags", flags.String())

	t.mu.Lock()
	if t.session != nil {
		logger.WithField("session_id", t.session.ID())
	}
	if unsupported := flags &^ t.supported; unsupported != 0 {
		logger.WithField("unsupported", unsupported.String()).Warn("Ignoring unsupported rescan flags")
		flags &^= unsupported
	}
	if flags == 0 {
		t.mu.Unlock()
		return
	}
	if !t.hasPorts {
		t.mu.Unlock()
		logger.Warn("Rescan requested by a plugin without audio ports")
		return
	}
	if flags.RequiresDeactivate() && t.session.IsActive() {
		t.rejected = t.rejected.Union(flags)
		t.mu.Unlock()
		logger.WithCaller().Warn("Rejected rescan while plugin is active")
		return
	}
	t.mu.Unlock()

	t.refresh(flags)
}

// refresh rescans the plugin without holding the lock. A call made while a
// scan is running queues its flags for the running scan to pick up. On
// failure the previous list is kept.
func (t *Tracker) refresh(reported RescanType) error {
	t.mu.Lock()
	if t.scanning {
		t.queued = t.queued.Union(reported)
		t.rerun = true
		t.mu.Unlock()
		return nil
	}
	t.scanning = true

	var err error
	for {
		session, ports, maxPorts, before := t.session, t.ports, t.maxPorts, t.list
		t.mu.Unlock()

		var list *PortList
		list, err = Scan(session.Plugin(), ports, maxPorts)
		logger := boundary.NewLogger("audioports", "Tracker.refresh").WithField("session_id", session.ID())
		if err != nil {
			logger.WithError(err, "scan").Warn("Audio port scan failed")
		} else {
			logger.WithFields(logrus.Fields{
				"inputs":  len(list.Inputs),
				"outputs": len(list.Outputs),
			}).Debug("Audio ports scanned")
			if changed := Changes(before, list); reported != 0 && changed&^reported != 0 {
				logger.WithField("changed", changed.String()).Warn("Plugin changed more than it reported")
			}
		}

		t.mu.Lock()
		if err != nil {
			t.lastErr = err
		} else {
			t.list = list
			t.lastErr = nil
			t.rescans++
		}
		if !t.rerun {
			break
		}
		reported = t.queued
		t.queued, t.rerun = 0, false
	}
	t.scanning = false
	t.mu.Unlock()
	return err
}

// Ports returns the last valid port list.
func (t *Tracker) Ports() *PortList {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.list
}

// Err returns the error of the last scan, or nil if it succeeded.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Scans returns the number of successful scans.
func (t *Tracker) Scans() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rescans
}

// Rejected returns the union of rescan flags rejected because the plugin was
// active.
func (t *Tracker) Rejected() RescanType {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rejected
}

// Changes reports which facets differ between two port lists.
func Changes(before, after *PortList) RescanType {
	if before == nil || after == nil {
		if before == after {
			return 0
		}
		return RescanList
	}
	return changesIn(before.Inputs, after.Inputs).Union(changesIn(before.Outputs, after.Outputs))
}

func changesIn(before, after []PortInfo) RescanType {
	if len(before) != len(after) {
		return RescanList
	}
	var out RescanType
	for i := range before {
		a, b := before[i], after[i]
		if a.ID != b.ID {
			out |= RescanList
			continue
		}
		if string(a.Name) != string(b.Name) {
			out |= RescanNames
		}
		if a.Flags != b.Flags {
			out |= RescanFlags
		}
		if a.ChannelCount != b.ChannelCount {
			out |= RescanChannelCount
		}
		if !a.PortType.Equal(b.PortType) {
			out |= RescanPortType
		}
		if a.HasInPlacePair != b.HasInPlacePair || a.InPlacePair != b.InPlacePair {
			out |= RescanInPlacePair
		}
	}
	return out
}
