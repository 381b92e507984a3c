// Package symbol absorbs the two result shapes a workspace/symbol request
// can return (SymbolInformation, which always carries a Location with a
// range, and WorkspaceSymbol, which may carry only a URI) behind one
// uniform view.
package symbol

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/protocol"
)

// Symbol is the uniform view over a workspace/symbol result entry.
type Symbol struct {
	Name          string
	Kind          protocol.SymbolKind
	ContainerName string
	Loc           protocol.Location
	// HasRange is false when the underlying WorkspaceSymbol carried only a
	// URI; Loc.Range is then the synthesized zero-length range at line 0.
	HasRange bool
}

func (s Symbol) Name_() string            { return s.Name }
func (s Symbol) Location() protocol.Location { return s.Loc }

// rawLocation matches either {"uri":..., "range":{...}} (SymbolInformation)
// or {"uri":...} alone (the degenerate WorkspaceSymbol case).
type rawLocation struct {
	URI   protocol.DocumentURI `json:"uri"`
	Range *protocol.Range      `json:"range"`
}

type rawSymbol struct {
	Name          string              `json:"name"`
	Kind          protocol.SymbolKind `json:"kind"`
	ContainerName string              `json:"containerName"`
	Location      rawLocation         `json:"location"`
}

// ParseWorkspaceSymbolResult decodes a raw workspace/symbol response into
// the uniform Symbol slice, tolerating both result shapes per entry.
func ParseWorkspaceSymbolResult(raw json.RawMessage) ([]Symbol, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var entries []rawSymbol
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("symbol: decode workspace/symbol result: %w", err)
	}

	symbols := make([]Symbol, 0, len(entries))
	for _, e := range entries {
		sym := Symbol{
			Name:          e.Name,
			Kind:          e.Kind,
			ContainerName: e.ContainerName,
		}
		if e.Location.Range != nil {
			sym.HasRange = true
			sym.Loc = protocol.Location{URI: e.Location.URI, Range: *e.Location.Range}
		} else {
			// WorkspaceSymbol without a range: synthesize a zero-length
			// range at line 0 so downstream code stays uniform.
			sym.Loc = protocol.Location{
				URI: e.Location.URI,
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 0},
					End:   protocol.Position{Line: 0, Character: 0},
				},
			}
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

// KindName renders a protocol.SymbolKind as a human-readable string for
// tool output.
func KindName(kind protocol.SymbolKind) string {
	names := map[protocol.SymbolKind]string{
		1: "File", 2: "Module", 3: "Namespace", 4: "Package",
		5: "Class", 6: "Method", 7: "Property", 8: "Field",
		9: "Constructor", 10: "Enum", 11: "Interface", 12: "Function",
		13: "Variable", 14: "Constant", 15: "String", 16: "Number",
		17: "Boolean", 18: "Array", 19: "Object", 20: "Key",
		21: "Null", 22: "EnumMember", 23: "Struct", 24: "Event",
		25: "Operator", 26: "TypeParameter",
	}
	if n, ok := names[kind]; ok {
		return n
	}
	return "Unknown"
}

// IsMethod reports whether kind is the Method symbol kind (6).
func IsMethod(kind protocol.SymbolKind) bool {
	return kind == protocol.SymbolKindMethod
}
