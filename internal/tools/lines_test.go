package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseLines(t *testing.T) {
	// references at {3,4,12}, contextLines=2 over a 20-line file yield
	// collapsed ranges [1..6] and [10..14] (0-indexed).
	var set []int
	for _, center := range []int{3, 4, 12} {
		for ln := center - 2; ln <= center+2; ln++ {
			set = append(set, ln)
		}
	}
	ranges := collapseLines(set)
	assert.Equal(t, []lineRange{{1, 6}, {10, 14}}, ranges)
}

func TestCollapseLines_Empty(t *testing.T) {
	assert.Nil(t, collapseLines(nil))
}

func TestRenderGutter(t *testing.T) {
	lines := []string{"a", "b", "c"}
	out := renderGutter(lines, lineRange{0, 2})
	assert.Equal(t, "     1| a\n     2| b\n     3| c\n", out)
}

func TestRenderGutterRanges_SeparatesWithEllipsis(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5"}
	out := renderGutterRanges(lines, []lineRange{{0, 1}, {4, 5}})
	assert.Contains(t, out, "...\n")
	assert.Contains(t, out, "     1| 0")
	assert.Contains(t, out, "     5| 4")
}
