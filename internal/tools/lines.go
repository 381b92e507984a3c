// Package tools implements the six MCP-facing operations this bridge
// exposes: definition, references, hover, diagnostics, rename_symbol, and
// edit_file. Each renders a single text block from LSP
// responses plus the client's open-file and diagnostics state.
package tools

import (
	"fmt"
	"sort"
	"strings"
)

// splitLines splits text the way the LSP line-range model expects: by "\n"
// only, leaving any trailing "\r" on each line's content. Editors that use
// CRLF still address the same zero-indexed line numbers this way.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// lineRange is an inclusive [start, end] pair of zero-indexed line numbers.
type lineRange struct {
	start, end int
}

// collapseLines returns the maximal contiguous ranges covering exactly the
// given set of zero-indexed line numbers, sorted ascending.
func collapseLines(lines []int) []lineRange {
	if len(lines) == 0 {
		return nil
	}
	sorted := append([]int(nil), lines...)
	sort.Ints(sorted)

	var ranges []lineRange
	start, prev := sorted[0], sorted[0]
	for _, n := range sorted[1:] {
		if n == prev {
			continue // duplicate
		}
		if n == prev+1 {
			prev = n
			continue
		}
		ranges = append(ranges, lineRange{start, prev})
		start, prev = n, n
	}
	ranges = append(ranges, lineRange{start, prev})
	return ranges
}

const gutterWidth = 6

// renderGutter renders lines[start..end] (inclusive, zero-indexed) with a
// right-padded 1-indexed line-number gutter: "     1| ...".
func renderGutter(lines []string, r lineRange) string {
	var b strings.Builder
	for ln := r.start; ln <= r.end && ln < len(lines); ln++ {
		fmt.Fprintf(&b, "%*d| %s\n", gutterWidth, ln+1, lines[ln])
	}
	return b.String()
}

// renderGutterRanges renders each collapsed range with the gutter,
// separating non-adjacent ranges with a "..." line.
func renderGutterRanges(lines []string, ranges []lineRange) string {
	var b strings.Builder
	for i, r := range ranges {
		if i > 0 {
			b.WriteString("...\n")
		}
		b.WriteString(renderGutter(lines, r))
	}
	return b.String()
}

func clampLine(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
