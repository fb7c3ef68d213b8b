package host

import "errors"

// Configuration errors.
var (
	// ErrInvalidOptions indicates options that fail validation.
	ErrInvalidOptions = errors.New("invalid host options")
)

// Session errors.
var (
	// ErrAlreadyLoaded indicates Load on a session that holds a plugin.
	ErrAlreadyLoaded = errors.New("plugin already loaded")

	// ErrNoPlugin indicates an operation that requires a loaded plugin.
	ErrNoPlugin = errors.New("no plugin loaded")

	// ErrPluginInit indicates the plugin refused init.
	ErrPluginInit = errors.New("plugin init failed")

	// ErrActivate indicates the plugin refused activation.
	ErrActivate = errors.New("plugin activation failed")
)
