package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcplsp/bridge/internal/symbol"
)

func TestReferencesMatch(t *testing.T) {
	assert.True(t, referencesMatch("Foo", symbol.Symbol{Name: "Foo"}))
	assert.False(t, referencesMatch("Foo", symbol.Symbol{Name: "Bar"}))

	assert.True(t, referencesMatch("pkg.Foo", symbol.Symbol{Name: "pkg.Foo"}))
	assert.True(t, referencesMatch("pkg.Foo", symbol.Symbol{Name: "Foo"}))
	assert.False(t, referencesMatch("pkg.Foo", symbol.Symbol{Name: "Bar"}))
}

func TestContextLinesFromEnv_DefaultsWhenUnset(t *testing.T) {
	t.Setenv("LSP_CONTEXT_LINES", "")
	assert.Equal(t, defaultContextLines, contextLinesFromEnv())
}

func TestContextLinesFromEnv_UsesOverride(t *testing.T) {
	t.Setenv("LSP_CONTEXT_LINES", "3")
	assert.Equal(t, 3, contextLinesFromEnv())
}
