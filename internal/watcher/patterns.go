package watcher

import (
	"path/filepath"
	"strings"
)

// excludedDirs are never descended into during the initial walk or watched,
// regardless of .gitignore content.
var excludedDirs = map[string]struct{}{
	"node_modules":  {},
	".git":          {},
	"dist":          {},
	"build":         {},
	"out":           {},
	"target":        {},
	".idea":         {},
	".vscode":       {},
	"__pycache__":   {},
	".pytest_cache": {},
	".mypy_cache":   {},
	"vendor":        {},
}

// excludedFileExtensions are never opened.
var excludedFileExtensions = map[string]struct{}{
	".pyc": {}, ".pyo": {}, ".class": {}, ".o": {}, ".obj": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {},
}

// largeBinaryExtensions are media/archive extensions never opened,
// independent of maxWatchedFileSize.
var largeBinaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".pdf": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".woff": {}, ".woff2": {}, ".ttf": {},
	".mp3": {}, ".mp4": {}, ".mov": {}, ".avi": {},
}

const maxWatchedFileSize = 10 * 1024 * 1024 // 10 MiB

// excludedByName reports whether path should never be walked or watched,
// independent of any dynamic registration pattern: dot-prefixed path
// segments, known noise directories, and known binary extensions.
func excludedByName(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == "" || seg == "." {
			continue
		}
		if strings.HasPrefix(seg, ".") {
			return true
		}
		if _, ok := excludedDirs[seg]; ok {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := excludedFileExtensions[ext]; ok {
		return true
	}
	if _, ok := largeBinaryExtensions[ext]; ok {
		return true
	}

	base := filepath.Base(path)
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") || strings.HasSuffix(base, "~") {
		return true
	}
	return false
}

// matchGlob implements the three watcher glob shapes dynamic registrations
// use: "**/*" (everything), "**/*.ext" (any depth, one extension),
// and "*.ext" (direct children only, one extension). Any other pattern
// shape never matches, since a dynamic registration a server sends outside
// these three forms is out of scope.
func matchGlob(pattern, relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	switch {
	case pattern == "**/*":
		return true
	case strings.HasPrefix(pattern, "**/*."):
		ext := pattern[len("**/*"):] // ".ext"
		return strings.HasSuffix(relPath, ext)
	case strings.HasPrefix(pattern, "*.") && !strings.Contains(pattern, "/"):
		ext := pattern[1:] // ".ext"
		return !strings.Contains(relPath, "/") && strings.HasSuffix(relPath, ext)
	default:
		return false
	}
}
