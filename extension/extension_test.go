package extension

import (
	"testing"
	"unsafe"

	"github.com/opd-ai/clapext/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTable struct {
	Value uint32
}

type wrapped struct {
	table *fakeTable
}

var hostDescriptor = Descriptor[HostSide, wrapped]{
	Identifiers: []string{"test.ext.v2", "test.ext"},
	FromRaw: func(raw RawExtension[HostSide]) wrapped {
		return wrapped{table: Cast[fakeTable](raw)}
	},
}

// countingHost exposes the given tables and records every lookup.
func countingHost(tables map[string]unsafe.Pointer, calls *[]string) *abi.Host {
	return &abi.Host{
		GetExtension: func(h *abi.Host, id *byte) unsafe.Pointer {
			name := abi.GoString(id)
			*calls = append(*calls, name)
			return tables[name]
		},
	}
}

func TestSideName(t *testing.T) {
	assert.Equal(t, "host", SideName[HostSide]())
	assert.Equal(t, "plugin", SideName[PluginSide]())
}

func TestNegotiateFirstMatchWins(t *testing.T) {
	v1 := &fakeTable{Value: 1}
	v2 := &fakeTable{Value: 2}
	var calls []string
	h := countingHost(map[string]unsafe.Pointer{
		"test.ext":    unsafe.Pointer(v1),
		"test.ext.v2": unsafe.Pointer(v2),
	}, &calls)

	got, ok := Negotiate(NewHostProvider(h, 0), hostDescriptor)
	require.True(t, ok)
	assert.Equal(t, uint32(2), got.table.Value)
	assert.Equal(t, []string{"test.ext.v2"}, calls)
}

func TestNegotiateFallsBackToOlderIdentifier(t *testing.T) {
	v1 := &fakeTable{Value: 1}
	var calls []string
	h := countingHost(map[string]unsafe.Pointer{"test.ext": unsafe.Pointer(v1)}, &calls)

	got, ok := Negotiate(NewHostProvider(h, 0), hostDescriptor)
	require.True(t, ok)
	assert.Same(t, v1, got.table)
	assert.Equal(t, []string{"test.ext.v2", "test.ext"}, calls)
}

func TestNegotiateAbsentIsSilent(t *testing.T) {
	var calls []string
	h := countingHost(nil, &calls)

	got, ok := Negotiate(NewHostProvider(h, 0), hostDescriptor)
	assert.False(t, ok)
	assert.Nil(t, got.table)
	assert.Len(t, calls, 2)
}

func TestNegotiateWithoutGetExtension(t *testing.T) {
	_, ok := Negotiate(NewHostProvider(&abi.Host{}, 4), hostDescriptor)
	assert.False(t, ok)

	_, ok = Negotiate(NewHostProvider(nil, 4), hostDescriptor)
	assert.False(t, ok)

	_, ok = Negotiate[HostSide, wrapped](nil, hostDescriptor)
	assert.False(t, ok)
}

func TestProviderCachesHitsAndMisses(t *testing.T) {
	v1 := &fakeTable{Value: 1}
	var calls []string
	h := countingHost(map[string]unsafe.Pointer{"test.ext": unsafe.Pointer(v1)}, &calls)
	p := NewHostProvider(h, 8)

	for i := 0; i < 3; i++ {
		_, ok := Negotiate(p, hostDescriptor)
		require.True(t, ok)
	}
	assert.Equal(t, []string{"test.ext.v2", "test.ext"}, calls)

	p.Purge()
	_, ok := Negotiate(p, hostDescriptor)
	require.True(t, ok)
	assert.Len(t, calls, 4)
}

func TestPluginProvider(t *testing.T) {
	table := &fakeTable{Value: 9}
	reg := NewRegistry(Implementation[PluginSide]{
		Identifiers: []string{"test.ext"},
		Table:       unsafe.Pointer(table),
	})
	p := &abi.Plugin{
		GetExtension: func(_ *abi.Plugin, id *byte) unsafe.Pointer {
			return reg.LookupRaw(id)
		},
	}

	d := Descriptor[PluginSide, *fakeTable]{
		Identifiers: []string{"test.ext"},
		FromRaw:     Cast[fakeTable, PluginSide],
	}
	got, ok := Negotiate(NewPluginProvider(p, 2), d)
	require.True(t, ok)
	assert.Equal(t, uint32(9), got.Value)
}

func TestRegistry(t *testing.T) {
	a := &fakeTable{Value: 1}
	b := &fakeTable{Value: 2}
	reg := NewRegistry(
		Implementation[HostSide]{Identifiers: []string{"x", "", "y"}, Table: unsafe.Pointer(a)},
		Implementation[HostSide]{Identifiers: []string{"y", "z"}, Table: unsafe.Pointer(b)},
		Implementation[HostSide]{Identifiers: []string{"w"}},
	)

	assert.Equal(t, []string{"x", "y", "z"}, reg.Identifiers())
	assert.Equal(t, unsafe.Pointer(a), reg.Lookup("y"))
	assert.Equal(t, unsafe.Pointer(b), reg.Lookup("z"))
	assert.Nil(t, reg.Lookup("w"))
	assert.Nil(t, reg.Lookup(""))
	assert.Nil(t, reg.LookupRaw(nil))

	var nilReg *Registry[HostSide]
	assert.Nil(t, nilReg.Lookup("x"))
}

func TestRawExtensionAddress(t *testing.T) {
	table := &fakeTable{}
	raw := RawExtension[PluginSide]{ptr: unsafe.Pointer(table)}
	assert.Equal(t, uintptr(unsafe.Pointer(table)), raw.Address())
	assert.Same(t, table, Cast[fakeTable](raw))
}
