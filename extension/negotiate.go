package extension

import (
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/boundary"
	"github.com/sirupsen/logrus"
)

// Descriptor describes an extension kind owned by side S and wrapped as E.
type Descriptor[S Side, E any] struct {
	// Identifiers are tried in order; the first one the counterpart answers
	// wins. A newer identifier is typically listed before older aliases.
	Identifiers []string

	// FromRaw wraps a negotiated table. It is only called with addresses
	// returned for one of Identifiers on side S.
	FromRaw func(raw RawExtension[S]) E
}

// Provider is the negotiating party's view of a counterpart's
// get_extension entry point. Lookups are remembered for the session,
// including misses.
type Provider[S Side] struct {
	lookup func(id *byte) unsafe.Pointer
	cache  *lru.Cache[string, unsafe.Pointer]
}

// NewHostProvider binds a provider to the extensions a host exposes. A nil
// host or a host without get_extension answers every lookup with absence.
// cacheSize <= 0 disables the session cache.
func NewHostProvider(h *abi.Host, cacheSize int) *Provider[HostSide] {
	var lookup func(id *byte) unsafe.Pointer
	if h != nil && h.GetExtension != nil {
		lookup = func(id *byte) unsafe.Pointer { return h.GetExtension(h, id) }
	}
	return newProvider[HostSide](lookup, cacheSize)
}

// NewPluginProvider binds a provider to the extensions a plugin exposes.
func NewPluginProvider(p *abi.Plugin, cacheSize int) *Provider[PluginSide] {
	var lookup func(id *byte) unsafe.Pointer
	if p != nil && p.GetExtension != nil {
		lookup = func(id *byte) unsafe.Pointer { return p.GetExtension(p, id) }
	}
	return newProvider[PluginSide](lookup, cacheSize)
}

func newProvider[S Side](lookup func(id *byte) unsafe.Pointer, cacheSize int) *Provider[S] {
	p := &Provider[S]{lookup: lookup}
	if cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		p.cache, _ = lru.New[string, unsafe.Pointer](cacheSize)
	}
	return p
}

// Purge forgets every remembered lookup, e.g. when the session ends.
func (p *Provider[S]) Purge() {
	if p.cache != nil {
		p.cache.Purge()
	}
}

// get resolves a single identifier, at most once per session while cached.
func (p *Provider[S]) get(id string) unsafe.Pointer {
	if p.cache != nil {
		if ptr, ok := p.cache.Get(id); ok {
			return ptr
		}
	}

	var ptr unsafe.Pointer
	if p.lookup != nil {
		if cid, err := abi.CString(id); err == nil {
			ptr = p.lookup(cid)
		}
	}

	if p.cache != nil {
		p.cache.Add(id, ptr)
	}
	return ptr
}

// Negotiate asks the counterpart for each identifier of d in order and wraps
// the first table it returns. It reports false when none is implemented.
func Negotiate[S Side, E any](p *Provider[S], d Descriptor[S, E]) (E, bool) {
	var zero E
	if p == nil || d.FromRaw == nil {
		return zero, false
	}

	for _, id := range d.Identifiers {
		if ptr := p.get(id); ptr != nil {
			boundary.NewLogger("extension", "Negotiate").
				WithFields(logrus.Fields{"side": SideName[S](), "extension": id}).
				Debug("Extension negotiated")
			return d.FromRaw(RawExtension[S]{ptr: ptr}), true
		}
	}

	boundary.NewLogger("extension", "Negotiate").
		WithFields(logrus.Fields{"side": SideName[S](), "identifiers": d.Identifiers}).
		Debug("Extension not provided by counterpart")
	return zero, false
}
