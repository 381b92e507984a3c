package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURIRoundTrip(t *testing.T) {
	uri := ToURI("/tmp/project/main.go")
	assert.Contains(t, uri, "file://")
	assert.Equal(t, "/tmp/project/main.go", ToPath(uri))
}

func TestLanguageID(t *testing.T) {
	cases := map[string]string{
		"main.go":     "go",
		"index.tsx":   "typescriptreact",
		"script.py":   "python",
		"README.md":   "plaintext",
		"run.sh":      "shell",
		"Program.cs":  "csharp",
	}
	for path, want := range cases {
		assert.Equal(t, want, LanguageID(path), path)
	}
}
