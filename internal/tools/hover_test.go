package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHoverContents_PlainString(t *testing.T) {
	raw := json.RawMessage(`"a simple string"`)
	assert.Equal(t, "a simple string", renderHoverContents(raw))
}

func TestRenderHoverContents_MarkupContent(t *testing.T) {
	raw := json.RawMessage(`{"kind":"markdown","value":"**bold**"}`)
	assert.Equal(t, "**bold**", renderHoverContents(raw))
}

func TestRenderHoverContents_MarkedStringArray(t *testing.T) {
	raw := json.RawMessage(`[{"language":"go","value":"func f()"},"plain line"]`)
	got := renderHoverContents(raw)
	assert.Contains(t, got, "```go\nfunc f()\n```")
	assert.Contains(t, got, "plain line")
}

func TestRenderHoverContents_SingleMarkedString(t *testing.T) {
	raw := json.RawMessage(`{"language":"python","value":"def f(): pass"}`)
	got := renderHoverContents(raw)
	assert.Equal(t, "```python\ndef f(): pass\n```", got)
}

func TestRenderHoverContents_EmptyOrNull(t *testing.T) {
	assert.Equal(t, "(no hover information)", renderHoverContents(nil))
	assert.Equal(t, "(no hover information)", renderHoverContents(json.RawMessage(`null`)))
}

func TestRenderMarkedString_NoLanguage(t *testing.T) {
	raw := json.RawMessage(`{"value":"just text"}`)
	assert.Equal(t, "just text", renderMarkedString(raw))
}
