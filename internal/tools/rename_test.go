package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcplsp/bridge/internal/pathutil"
)

func TestApplyWorkspaceEdit_TwoFiles(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "a.go")
	fileB := filepath.Join(dir, "b.go")
	require.NoError(t, os.WriteFile(fileA, []byte("package a\n\nfunc old() {}\nfunc caller() { old() }\n"), 0o644))
	require.NoError(t, os.WriteFile(fileB, []byte("package a\n\nfunc another() { old() }\n"), 0o644))

	edit := workspaceEditResult{
		Changes: map[string][]textEditResult{
			pathutil.ToURI(fileA): {
				{Range: lspRange{position{2, 5}, position{2, 8}}, NewText: "new"},
				{Range: lspRange{position{3, 16}, position{3, 19}}, NewText: "new"},
				{Range: lspRange{position{3, 0}, position{3, 0}}, NewText: "// renamed\n"},
			},
			pathutil.ToURI(fileB): {
				{Range: lspRange{position{0, 0}, position{0, 0}}, NewText: "// package comment\n"},
			},
		},
	}

	summary, err := applyWorkspaceEdit(edit)
	require.NoError(t, err)
	assert.Contains(t, summary, "Total changes: 4 across 2 file(s)")

	gotA, err := os.ReadFile(fileA)
	require.NoError(t, err)
	assert.Contains(t, string(gotA), "func new() {}")
	assert.Contains(t, string(gotA), "new()")

	gotB, err := os.ReadFile(fileB)
	require.NoError(t, err)
	assert.Contains(t, string(gotB), "old()") // b.go's "old()" wasn't targeted by this edit
}
