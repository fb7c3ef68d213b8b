// Package extension implements extension identity, side typing and runtime
// negotiation between a host and a plugin.
//
// An extension kind is described by a Descriptor: the identifiers it may be
// requested under, tried in order, and a constructor that wraps the opaque
// table address. The side that owns the table is a type parameter, so a
// RawExtension[HostSide] can never be handed to a descriptor expecting a
// plugin table:
//
//	var HostExtension = extension.Descriptor[extension.HostSide, HostAudioPorts]{
//	    Identifiers: []string{abi.ExtAudioPorts},
//	    FromRaw: func(raw extension.RawExtension[extension.HostSide]) HostAudioPorts {
//	        return HostAudioPorts{table: extension.Cast[abi.HostAudioPorts](raw)}
//	    },
//	}
//
//	provider := extension.NewHostProvider(rawHost, 16)
//	ports, ok := extension.Negotiate(provider, HostExtension)
//	if !ok {
//	    // the host does not implement audio ports; carry on without it
//	}
//
// Absence is the expected outcome of negotiation and is never an error.
//
// # Safety
//
// Cast is the only place where an opaque address becomes a typed table. Its
// precondition cannot be checked at runtime: the address must reference a
// table whose layout matches T and must have been obtained from the side S.
// Addresses only enter this package through Provider lookups, which are bound
// to a side at construction, so application code never calls Cast directly
// and a side mix-up requires bypassing the API.
package extension
