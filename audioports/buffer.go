package audioports

import "github.com/opd-ai/clapext/abi"

// PortInfoBuffer is the host-side destination for a plugin's get call. A
// buffer can be reused across calls; its contents are only decoded after the
// plugin reports success.
type PortInfoBuffer struct {
	raw abi.AudioPortInfo
}

// NewPortInfoBuffer allocates a buffer.
func NewPortInfoBuffer() *PortInfoBuffer {
	return new(PortInfoBuffer)
}
