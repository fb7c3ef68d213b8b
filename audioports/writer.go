package audioports

import "github.com/opd-ai/clapext/abi"

// PortInfoWriter fills a destination record supplied by the host. The
// destination may hold arbitrary bytes; the writer never reads it.
//
// Set may be called more than once; each call rewrites every field and the
// last one wins.
type PortInfoWriter struct {
	buf *abi.AudioPortInfo
	set bool
}

// newPortInfoWriter wraps dst without touching it. dst must be non-nil.
func newPortInfoWriter(dst *abi.AudioPortInfo) *PortInfoWriter {
	return &PortInfoWriter{buf: dst}
}

// isSet reports whether Set has been called.
func (w *PortInfoWriter) isSet() bool {
	return w.set
}

// Set encodes info into the destination record.
//
// info.ID must not be abi.InvalidID; it is written verbatim.
func (w *PortInfoWriter) Set(info *PortInfo) {
	buf := w.buf

	buf.ID = info.ID.Get()
	abi.WriteToArrayBuf(&buf.Name, info.Name)
	buf.Flags = info.Flags.Bits()
	buf.ChannelCount = info.ChannelCount
	buf.PortType = info.PortType.Raw()
	buf.InPlacePair = abi.OptionalIDToRaw(info.InPlacePair, info.HasInPlacePair)

	w.set = true
}
