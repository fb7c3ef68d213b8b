// Package plugin wraps a Go plugin implementation behind the abi.Plugin
// table a host calls into.
//
// The wrapper owns the raw table, resolves the extensions the plugin
// registered, and routes every host call through boundary containment so a
// failing implementation answers with the ABI failure value instead of
// unwinding into the host.
//
//	func Entry(h *abi.Host) (*abi.Plugin, error) {
//	    return plugin.New(desc, h, newMainThread, audioports.PluginImplementation)
//	}
//
// The main thread value returned by the factory is what extension glue
// dispatches to; it implements the per-extension interfaces such as
// audioports.PluginAudioPortsImpl.
package plugin
