package audioports

import (
	"fmt"

	"github.com/opd-ai/clapext/abi"
	"github.com/opd-ai/clapext/limits"
)

// PortList is a validated snapshot of a plugin's ports.
type PortList struct {
	Inputs  []PortInfo
	Outputs []PortInfo
}

// Direction returns the inputs or outputs.
func (l *PortList) Direction(isInput bool) []PortInfo {
	if isInput {
		return l.Inputs
	}
	return l.Outputs
}

// Main returns the main port of a direction, if any.
func (l *PortList) Main(isInput bool) (PortInfo, bool) {
	ports := l.Direction(isInput)
	if len(ports) > 0 && ports[0].Flags.Contains(PortIsMain) {
		return ports[0], true
	}
	return PortInfo{}, false
}

// Find returns the port with id in a direction.
func (l *PortList) Find(isInput bool, id abi.ID) (PortInfo, bool) {
	for _, p := range l.Direction(isInput) {
		if p.ID == id {
			return p, true
		}
	}
	return PortInfo{}, false
}

// Scan enumerates and validates every port of plugin. maxPorts bounds each
// direction; a value <= 0 selects limits.MaxPortsPerDirection. The returned
// infos own their memory.
func Scan(plugin *abi.Plugin, ports PluginAudioPorts, maxPorts int) (*PortList, error) {
	inputs, err := scanDirection(plugin, ports, true, maxPorts)
	if err != nil {
		return nil, err
	}
	outputs, err := scanDirection(plugin, ports, false, maxPorts)
	if err != nil {
		return nil, err
	}
	return &PortList{Inputs: inputs, Outputs: outputs}, nil
}

func scanDirection(plugin *abi.Plugin, ports PluginAudioPorts, isInput bool, maxPorts int) ([]PortInfo, error) {
	dir := directionName(isInput)

	count := ports.Count(plugin, isInput)
	if err := limits.ValidatePortCount(count, maxPorts); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	buf := NewPortInfoBuffer()
	seen := make(map[abi.ID]uint32, count)
	out := make([]PortInfo, 0, count)

	for i := uint32(0); i < count; i++ {
		info, ok := ports.Get(plugin, i, isInput, buf)
		if !ok {
			return nil, fmt.Errorf("%s port %d: %w", dir, i, ErrPortUnavailable)
		}
		if prev, dup := seen[info.ID]; dup {
			return nil, fmt.Errorf("%s ports %d and %d share id %s: %w", dir, prev, i, info.ID, ErrDuplicatePortID)
		}
		if i != 0 && info.Flags.Contains(PortIsMain) {
			return nil, fmt.Errorf("%s port %d: %w", dir, i, ErrMainPortNotFirst)
		}
		seen[info.ID] = i
		out = append(out, info.Clone())
	}
	return out, nil
}

func directionName(isInput bool) string {
	if isInput {
		return "input"
	}
	return "output"
}
