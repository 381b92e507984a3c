package watcher

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreMatcher wraps a workspace's .gitignore, tolerating its absence:
// a workspace with no .gitignore simply never excludes anything by it.
type ignoreMatcher struct {
	gi *gitignore.GitIgnore
}

func loadIgnoreMatcher(workspaceDir string) *ignoreMatcher {
	path := filepath.Join(workspaceDir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return &ignoreMatcher{}
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return &ignoreMatcher{}
	}
	return &ignoreMatcher{gi: gi}
}

func (m *ignoreMatcher) ignores(relPath string) bool {
	if m == nil || m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(relPath)
}
