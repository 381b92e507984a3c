package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mcplsp/bridge/internal/pathutil"
	"github.com/mcplsp/bridge/internal/symbol"
)

var commentPrefixes = []string{"//", "/*", "*", "#", "@"}

// Definition looks up symbolName via workspace/symbol, applies the
// definition match policy, and renders an expanded-range block per
// accepted match.
func (t *Toolset) Definition(ctx context.Context, symbolName string) (string, error) {
	symbols, err := t.lookupSymbol(ctx, symbolName)
	if err != nil {
		return "", err
	}

	var blocks []string
	for _, sym := range symbols {
		if !definitionMatches(symbolName, sym) {
			continue
		}
		block, err := t.renderDefinition(sym)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return fmt.Sprintf("%s not found", symbolName), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (t *Toolset) lookupSymbol(ctx context.Context, query string) ([]symbol.Symbol, error) {
	var raw json.RawMessage
	if err := t.Client.Call(ctx, "workspace/symbol", workspaceSymbolParams{Query: query}, &raw); err != nil {
		return nil, err
	}
	return symbol.ParseWorkspaceSymbolResult(raw)
}

// definitionMatches decides whether a workspace/symbol result matches
// input. A dotted input (e.g. "Type.Method") must match sym.Name exactly;
// otherwise a bare method name also matches a "::"- or "."-qualified
// symbol name.
func definitionMatches(input string, sym symbol.Symbol) bool {
	if strings.Contains(input, ".") {
		return sym.Name == input
	}
	if symbol.IsMethod(sym.Kind) {
		return sym.Name == input ||
			strings.HasSuffix(sym.Name, "::"+input) ||
			strings.HasSuffix(sym.Name, "."+input)
	}
	return sym.Name == input
}

func (t *Toolset) renderDefinition(sym symbol.Symbol) (string, error) {
	path := pathutil.ToPath(string(sym.Loc.URI))
	if err := t.Client.OpenFile(context.Background(), path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := splitLines(string(content))

	origStart := int(sym.Loc.Range.Start.Line)
	origEnd := int(sym.Loc.Range.End.Line)

	startLine := expandStartUpward(lines, origStart)
	endLine := expandEndByBraceBalance(lines, origStart, origEnd)

	var b strings.Builder
	fmt.Fprintf(&b, "Symbol: %s\n", sym.Name)
	fmt.Fprintf(&b, "File: %s\n", path)
	if sym.Kind != 0 {
		fmt.Fprintf(&b, "Kind: %s\n", symbol.KindName(sym.Kind))
	}
	if sym.ContainerName != "" {
		fmt.Fprintf(&b, "Container Name: %s\n", sym.ContainerName)
	}
	fmt.Fprintf(&b, "Range L%d:C%d - L%d:C%d\n",
		startLine+1, sym.Loc.Range.Start.Character+1,
		endLine+1, sym.Loc.Range.End.Character+1)
	b.WriteString(renderGutter(lines, lineRange{startLine, clampLine(endLine, len(lines)-1)}))

	return b.String(), nil
}

// expandStartUpward walks backward while the preceding line, trimmed,
// begins with a comment/annotation marker.
func expandStartUpward(lines []string, start int) int {
	ln := start
	for ln > 0 {
		prev := strings.TrimSpace(lines[ln-1])
		matched := false
		for _, p := range commentPrefixes {
			if strings.HasPrefix(prev, p) {
				matched = true
				break
			}
		}
		if !matched {
			break
		}
		ln--
	}
	return ln
}

// expandEndByBraceBalance tracks brace balance and quote state forward
// from origStart, returning the first line strictly after origStart where
// the balance returns to zero, or origEnd if it never does.
func expandEndByBraceBalance(lines []string, origStart, origEnd int) int {
	balance := 0
	opened := false
	inSingle, inDouble, escaped := false, false, false

	for ln := origStart; ln < len(lines); ln++ {
		for _, ch := range lines[ln] {
			if escaped {
				escaped = false
				continue
			}
			switch {
			case ch == '\\' && (inSingle || inDouble):
				escaped = true
			case ch == '\'' && !inDouble:
				inSingle = !inSingle
			case ch == '"' && !inSingle:
				inDouble = !inDouble
			case ch == '{' && !inSingle && !inDouble:
				balance++
				opened = true
			case ch == '}' && !inSingle && !inDouble:
				balance--
			}
		}
		if opened && balance == 0 && ln > origStart {
			return ln
		}
	}
	return origEnd
}
