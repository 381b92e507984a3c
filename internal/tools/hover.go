package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/mcplsp/bridge/internal/pathutil"
)

type hoverResult struct {
	Contents json.RawMessage `json:"contents"`
}

// Hover requests hover information for a position and renders its
// contents, whichever of the three shapes the server returns them in.
func (t *Toolset) Hover(ctx context.Context, path string, line, column int) (string, error) {
	if err := t.Client.OpenFile(ctx, path); err != nil {
		return "", err
	}

	var result hoverResult
	params := hoverParams{
		TextDocument: textDocumentIdentifier{URI: protocol.DocumentURI(pathutil.ToURI(path))},
		Position:     position{Line: uint32(line - 1), Character: uint32(column - 1)},
	}
	if err := t.Client.Call(ctx, "textDocument/hover", params, &result); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hover information for %s:%d:%d\n", path, line, column)
	b.WriteString(renderHoverContents(result.Contents))
	return b.String(), nil
}

func renderHoverContents(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "(no hover information)"
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var markupContent struct {
		Kind  string `json:"kind"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &markupContent); err == nil && markupContent.Kind != "" && markupContent.Value != "" {
		return markupContent.Value
	}

	var markedStrings []json.RawMessage
	if err := json.Unmarshal(raw, &markedStrings); err == nil {
		var parts []string
		for _, m := range markedStrings {
			parts = append(parts, renderMarkedString(m))
		}
		return strings.Join(parts, "\n\n")
	}

	return renderMarkedString(raw)
}

func renderMarkedString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Language string `json:"language"`
		Value    string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Language != "" {
			return fmt.Sprintf("```%s\n%s\n```", obj.Language, obj.Value)
		}
		return obj.Value
	}
	return string(raw)
}
