package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mcplsp/bridge/internal/lspclient"
)

// Edit is a zero-indexed, half-open-on-character text replacement,
// independent of go.lsp.dev/protocol's TextEdit so the splice algorithm
// below has no dependency on that package's exact field shapes.
type Edit struct {
	StartLine, StartChar int
	EndLine, EndChar     int
	NewText              string
}

// FileEditSummary reports how many edits were applied to one file.
type FileEditSummary struct {
	Path  string
	Count int
}

// applyEditsToFile applies a WorkspaceEdit's edits to one file: sort this
// file's edits descending by (start.line, start.character) so earlier
// splices never invalidate the line indices of edits still to come, then
// splice each one in turn and write the result back.
func applyEditsToFile(path string, edits []Edit) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &lspclient.FileIOError{Path: path, Cause: err}
	}
	lines := splitLines(string(content))

	sorted := append([]Edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartLine != sorted[j].StartLine {
			return sorted[i].StartLine > sorted[j].StartLine
		}
		return sorted[i].StartChar > sorted[j].StartChar
	})

	for _, e := range sorted {
		lines = spliceEdit(lines, e)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return &lspclient.FileIOError{Path: path, Cause: err}
	}
	return nil
}

func spliceEdit(lines []string, e Edit) []string {
	if e.StartLine < 0 || e.StartLine >= len(lines) {
		return lines
	}
	endLine := e.EndLine
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if e.StartLine == endLine {
		line := lines[e.StartLine]
		startChar := clampChar(e.StartChar, len(line))
		endChar := clampChar(e.EndChar, len(line))
		if endChar < startChar {
			endChar = startChar
		}
		lines[e.StartLine] = line[:startChar] + e.NewText + line[endChar:]
		return lines
	}

	startLineText := lines[e.StartLine]
	endLineText := lines[endLine]
	startChar := clampChar(e.StartChar, len(startLineText))
	endChar := clampChar(e.EndChar, len(endLineText))
	merged := startLineText[:startChar] + e.NewText + endLineText[endChar:]

	out := make([]string, 0, len(lines)-(endLine-e.StartLine))
	out = append(out, lines[:e.StartLine]...)
	out = append(out, merged)
	out = append(out, lines[endLine+1:]...)
	return out
}

func clampChar(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// summarize produces the "Total changes: N across M file(s)" report plus
// per-file counts.
func summarize(perFile []FileEditSummary) string {
	total := 0
	for _, f := range perFile {
		total += f.Count
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total changes: %d across %d file(s)\n", total, len(perFile))
	for _, f := range perFile {
		fmt.Fprintf(&b, "  %s: %d edit(s)\n", f.Path, f.Count)
	}
	return b.String()
}
