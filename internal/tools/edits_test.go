package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEditsToFile_OrderIndependent(t *testing.T) {
	original := "abcdefgh\nline1\nline2\nline3\n"

	e1 := Edit{StartLine: 0, StartChar: 5, EndLine: 0, EndChar: 8, NewText: "XYZ"}
	e2 := Edit{StartLine: 2, StartChar: 0, EndLine: 3, EndChar: 4, NewText: "AB"}

	forward := writeAndApply(t, original, []Edit{e1, e2})
	reverse := writeAndApply(t, original, []Edit{e2, e1})

	require.Equal(t, forward, reverse)
	require.Equal(t, "abcdeXYZ\nline1\nAB3\n", forward)
}

func writeAndApply(t *testing.T, original string, edits []Edit) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))
	require.NoError(t, applyEditsToFile(path, edits))
	out, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(out)
}

func TestApplyEditsToFile_SingleLineReplace(t *testing.T) {
	got := writeAndApply(t, "hello world\n", []Edit{{StartLine: 0, StartChar: 6, EndLine: 0, EndChar: 11, NewText: "there"}})
	require.Equal(t, "hello there\n", got)
}
