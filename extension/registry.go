package extension

import (
	"unsafe"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/limits"
)

// Implementation pairs a table implemented on side S with the identifiers it
// answers to.
type Implementation[S Side] struct {
	Identifiers []string
	Table       unsafe.Pointer
}

// Registry resolves identifiers to the tables a party implements. It backs
// that party's get_extension entry point and is read-only once built.
type Registry[S Side] struct {
	tables map[string]unsafe.Pointer
	ids    []string
}

// NewRegistry builds a registry. When two implementations claim the same
// identifier the first one wins. Empty or over-long identifiers are skipped.
func NewRegistry[S Side](impls ...Implementation[S]) *Registry[S] {
	r := &Registry[S]{tables: make(map[string]unsafe.Pointer)}
	for _, impl := range impls {
		if impl.Table == nil {
			continue
		}
		for _, id := range impl.Identifiers {
			if id == "" || limits.ValidateIdentifier(id) != nil {
				continue
			}
			if _, exists := r.tables[id]; exists {
				continue
			}
			r.tables[id] = impl.Table
			r.ids = append(r.ids, id)
		}
	}
	return r
}

// Lookup returns the table for id, or nil.
func (r *Registry[S]) Lookup(id string) unsafe.Pointer {
	if r == nil {
		return nil
	}
	return r.tables[id]
}

// LookupRaw is Lookup for a NUL-terminated identifier received from the
// counterpart. A null identifier yields nil.
func (r *Registry[S]) LookupRaw(id *byte) unsafe.Pointer {
	if id == nil {
		return nil
	}
	return r.Lookup(abi.GoString(id))
}

// Identifiers lists the registered identifiers in registration order.
func (r *Registry[S]) Identifiers() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}
