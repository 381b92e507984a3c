// Package pathutil converts between OS filesystem paths and the file://
// URIs the language server speaks, and maps file extensions to LSP
// languageId strings.
package pathutil

import (
	"path/filepath"
	"strings"

	lspuri "go.lsp.dev/uri"
)

// ToURI converts an absolute OS path to a file:// URI.
func ToURI(path string) string {
	return string(lspuri.File(path))
}

// ToPath converts a file:// URI back to an OS path.
func ToPath(uri string) string {
	return lspuri.URI(uri).Filename()
}

// languageIDs maps a lowercased file extension (including the leading dot)
// to the LSP languageId reported in textDocument/didOpen.
var languageIDs = map[string]string{
	".ts":    "typescript",
	".tsx":   "typescriptreact",
	".js":    "javascript",
	".jsx":   "javascriptreact",
	".py":    "python",
	".go":    "go",
	".rs":    "rust",
	".c":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".java":  "java",
	".cs":    "csharp",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".r":     "r",
	".sh":    "shell",
	".bash":  "shell",
	".zsh":   "shell",
	".fish":  "shell",
}

// LanguageID returns the LSP languageId for a file path, matched on its
// lowercased extension, falling back to "plaintext".
func LanguageID(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if id, ok := languageIDs[ext]; ok {
		return id
	}
	return "plaintext"
}
