// Package boundary contains failure containment for functions reachable from
// the other side of a host/plugin function table.
//
// Nothing may unwind across a table call: every entry point installed in an
// abi table runs its body through Guard or Do, which turn a returned error or
// a recovered panic into the ABI failure value (false, 0 or nil) and log it.
//
//	Get: func(p *abi.Plugin, index uint32, isInput bool, info *abi.AudioPortInfo) bool {
//	    return boundary.Guard("audioports.get", false, func() (bool, error) {
//	        if info == nil {
//	            return false, boundary.NullPointer("clap_audio_port_info")
//	        }
//	        ...
//	    })
//	}
package boundary
