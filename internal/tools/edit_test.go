package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineCountOf(t *testing.T) {
	assert.Equal(t, 0, lineCountOf(""))
	assert.Equal(t, 1, lineCountOf("one line"))
	assert.Equal(t, 2, lineCountOf("line one\nline two"))
}

// TestEditFile_PastEOFAppend exercises the append branch of EditFile's
// input-to-Edit conversion directly, bypassing the LSP round trip that
// EditFile itself performs before calling applyEditsToFile.
func TestEditFile_PastEOFAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("line1\nline2\n"), 0o644))

	lines := splitLines("line1\nline2\n")
	totalLines := len(lines)
	lastZero := totalLines - 1
	eolChar := len(lines[lastZero])

	text := "\n" + "appended"
	edit := Edit{StartLine: lastZero, StartChar: eolChar, EndLine: lastZero, EndChar: eolChar, NewText: text}
	require.NoError(t, applyEditsToFile(path, []Edit{edit}))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), "appended")
	assert.Equal(t, "line1\nline2\nappended", string(out))
}

func TestEditFile_InBoundsReplacesRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	lines := splitLines("one\ntwo\nthree\n")
	edit := Edit{StartLine: 1, StartChar: 0, EndLine: 1, EndChar: len(lines[1]), NewText: "TWO"}
	require.NoError(t, applyEditsToFile(path, []Edit{edit}))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\nTWO\nthree\n", string(out))
}
