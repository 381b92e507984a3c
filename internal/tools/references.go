package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mcplsp/bridge/internal/pathutil"
	"github.com/mcplsp/bridge/internal/symbol"
)

const defaultContextLines = 5

func contextLinesFromEnv() int {
	if v := os.Getenv("LSP_CONTEXT_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultContextLines
}

// References looks up symbolName via workspace/symbol, fetches its
// references, and renders each as a context-line block grouped by file.
func (t *Toolset) References(ctx context.Context, symbolName string) (string, error) {
	symbols, err := t.lookupSymbol(ctx, symbolName)
	if err != nil {
		return "", err
	}

	contextLines := contextLinesFromEnv()
	var locsByURI = map[string][]locationResult{}

	for _, sym := range symbols {
		if !referencesMatch(symbolName, sym) {
			continue
		}
		path := pathutil.ToPath(string(sym.Loc.URI))
		if err := t.Client.OpenFile(ctx, path); err != nil {
			return "", err
		}

		var raw []locationResult
		params := referenceParams{
			TextDocument: textDocumentIdentifier{URI: sym.Loc.URI},
			Position:     position{Line: sym.Loc.Range.Start.Line, Character: sym.Loc.Range.Start.Character},
			Context:      referenceContext{IncludeDeclaration: false},
		}
		if err := t.Client.Call(ctx, "textDocument/references", params, &raw); err != nil {
			return "", err
		}
		for _, loc := range raw {
			locsByURI[string(loc.URI)] = append(locsByURI[string(loc.URI)], loc)
		}
	}

	if len(locsByURI) == 0 {
		return "No references found", nil
	}

	uris := make([]string, 0, len(locsByURI))
	for u := range locsByURI {
		uris = append(uris, u)
	}
	sort.Strings(uris)

	var blocks []string
	for _, u := range uris {
		blocks = append(blocks, renderReferencesInFile(pathutil.ToPath(u), locsByURI[u], contextLines))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// referencesMatch implements the more permissive match policy.
func referencesMatch(input string, sym symbol.Symbol) bool {
	if strings.Contains(input, ".") {
		if sym.Name == input {
			return true
		}
		parts := strings.Split(input, ".")
		return sym.Name == parts[len(parts)-1]
	}
	return sym.Name == input
}

func renderReferencesInFile(path string, locs []locationResult, contextLines int) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("File: %s\n(error reading file: %v)", path, err)
	}
	lines := splitLines(string(content))
	lastLine := len(lines) - 1

	var lineSet []int
	var at []string
	for _, loc := range locs {
		sl := int(loc.Range.Start.Line)
		el := int(loc.Range.End.Line)
		for ln := clampLine(sl-contextLines, lastLine); ln <= clampLine(el+contextLines, lastLine); ln++ {
			lineSet = append(lineSet, ln)
		}
		at = append(at, fmt.Sprintf("L%d:C%d", sl+1, loc.Range.Start.Character+1))
	}

	ranges := collapseLines(lineSet)

	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", path)
	fmt.Fprintf(&b, "References in File: %d\n", len(locs))
	fmt.Fprintf(&b, "At: %s\n", strings.Join(at, ", "))
	b.WriteString(renderGutterRanges(lines, ranges))
	return b.String()
}
