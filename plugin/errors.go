package plugin

import "errors"

var (
	// ErrNotInitialized indicates a call before init or after destroy.
	ErrNotInitialized = errors.New("plugin not initialized")

	// ErrAlreadyActive indicates activate on an active plugin.
	ErrAlreadyActive = errors.New("plugin already active")

	// ErrInvalidDescriptor indicates a descriptor that cannot be exposed.
	ErrInvalidDescriptor = errors.New("invalid plugin descriptor")
)
