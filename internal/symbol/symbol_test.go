package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkspaceSymbolResult_BothShapes(t *testing.T) {
	raw := []byte(`[
		{"name":"Foo","kind":12,"containerName":"pkg","location":{"uri":"file:///a.go","range":{"start":{"line":1,"character":0},"end":{"line":1,"character":3}}}},
		{"name":"Bar","kind":5,"location":{"uri":"file:///b.go"}}
	]`)

	symbols, err := ParseWorkspaceSymbolResult(raw)
	require.NoError(t, err)
	require.Len(t, symbols, 2)

	assert.True(t, symbols[0].HasRange)
	assert.Equal(t, uint32(1), uint32(symbols[0].Loc.Range.Start.Line))

	assert.False(t, symbols[1].HasRange)
	assert.Equal(t, uint32(0), uint32(symbols[1].Loc.Range.Start.Line))
	assert.Equal(t, uint32(0), uint32(symbols[1].Loc.Range.End.Line))
}

func TestParseWorkspaceSymbolResult_Empty(t *testing.T) {
	symbols, err := ParseWorkspaceSymbolResult(nil)
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "Method", KindName(6))
	assert.Equal(t, "Unknown", KindName(999))
}
