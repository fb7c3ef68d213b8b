// Package limits provides centralized bounds for data read across the
// host/plugin boundary.
//
// Fixed-size buffers are already bounded by their ABI layout (see
// abi.NameSize). Counts reported by the counterpart are not: a plugin may
// return any uint32 from its port count entry point. Callers enumerating
// such a count validate it first:
//
//	if err := limits.ValidatePortCount(n, limits.MaxPortsPerDirection); err != nil {
//	    // refuse to enumerate
//	}
//
// # Error Types
//
//   - ErrTooManyPorts: the reported count exceeds the configured maximum
//   - ErrIdentifierTooLong: an extension identifier exceeds MaxIdentifierLength
package limits
