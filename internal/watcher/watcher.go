// Package watcher walks and watches a workspace directory, filtering out
// noise (VCS metadata, build output, binaries, .gitignore'd paths) and
// debouncing bursts of events so the bridge can tell the language server
// which files changed without flooding it during large saves or rebuilds.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeKind classifies a filesystem event the way LSP's FileChangeType
// does: Created=1, Changed=2, Deleted=3.
type ChangeKind int

const (
	Created ChangeKind = iota + 1
	Changed
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is one debounced, filtered filesystem change.
type Event struct {
	Path string
	Kind ChangeKind
}

const debounceDelay = 100 * time.Millisecond
const yieldEvery = 100

// Watcher recursively watches workspaceDir and reports filtered, debounced
// events to OnFileEvent. Which of those events also match a language
// server's dynamic workspace/didChangeWatchedFiles registration is decided
// separately via MatchesRegisteredPattern, since the bridge needs to know
// about file changes for its own open-file bookkeeping regardless of
// whether any server asked to be told about them.
type Watcher struct {
	workspaceDir string
	fsw          *fsnotify.Watcher
	ignore       *ignoreMatcher
	logger       *zap.Logger
	deb          *debouncer

	OnFileEvent func(Event)

	patternsMu sync.RWMutex
	patterns   map[string][]registeredPattern // registration id -> patterns

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a Watcher rooted at workspaceDir. Walk must be called to
// perform the initial recursive scan and start watching; New alone does
// not touch the filesystem beyond loading .gitignore.
func New(workspaceDir string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		workspaceDir: workspaceDir,
		fsw:          fsw,
		ignore:       loadIgnoreMatcher(workspaceDir),
		logger:       logger,
		patterns:     map[string][]registeredPattern{},
		stopCh:       make(chan struct{}),
	}
	w.deb = newDebouncer(debounceDelay, w.flush)
	return w, nil
}

// registeredPattern is one glob/kind-mask pair from a dynamic
// workspace/didChangeWatchedFiles registration. KindMask bits follow LSP's
// WatchKind encoding: Create=1, Change=2, Delete=4.
type registeredPattern struct {
	Glob     string
	KindMask int
}

// RegisteredPattern is the caller-facing form SetPatterns accepts,
// mirroring one FileSystemWatcher entry of a registration.
type RegisteredPattern struct {
	Glob     string
	KindMask int
}

// SetPatterns replaces the patterns associated with one dynamic
// registration id. A server that re-registers with the same id overwrites
// the prior set rather than accumulating it, and an empty pattern set
// removes the registration. client/unregisterCapability is not forwarded
// here, so patterns stay registered until replaced.
func (w *Watcher) SetPatterns(registrationID string, patterns []RegisteredPattern) {
	w.patternsMu.Lock()
	defer w.patternsMu.Unlock()
	if len(patterns) == 0 {
		delete(w.patterns, registrationID)
		return
	}
	converted := make([]registeredPattern, len(patterns))
	for i, p := range patterns {
		converted[i] = registeredPattern{Glob: p.Glob, KindMask: p.KindMask}
	}
	w.patterns[registrationID] = converted
}

func (k ChangeKind) bit() int {
	switch k {
	case Created:
		return 1
	case Changed:
		return 2
	case Deleted:
		return 4
	default:
		return 0
	}
}

// MatchesRegisteredPattern reports whether relPath, changing in a way
// described by kind, matches any currently-registered dynamic watcher
// pattern under both its glob and its kind mask.
func (w *Watcher) MatchesRegisteredPattern(relPath string, kind ChangeKind) bool {
	w.patternsMu.RLock()
	defer w.patternsMu.RUnlock()
	bit := kind.bit()
	for _, pats := range w.patterns {
		for _, p := range pats {
			if p.KindMask&bit != 0 && matchGlob(p.Glob, relPath) {
				return true
			}
		}
	}
	return false
}

// MatchesAnyPattern reports whether relPath matches any currently
// registered dynamic watcher pattern's glob, ignoring kind mask. Used by
// the initial open-walk triggered on first registration, which cares only
// about which files a server wants to know about, not which change types.
func (w *Watcher) MatchesAnyPattern(relPath string) bool {
	w.patternsMu.RLock()
	defer w.patternsMu.RUnlock()
	for _, pats := range w.patterns {
		for _, p := range pats {
			if matchGlob(p.Glob, relPath) {
				return true
			}
		}
	}
	return false
}

// Walk performs the initial recursive scan of the workspace, registering
// every non-excluded directory with fsnotify, then starts the background
// event loop. Large directory trees yield every yieldEvery entries so
// startup doesn't block the caller's goroutine scheduler for long
// stretches.
func (w *Watcher) Walk(ctx context.Context) error {
	count := 0
	err := filepath.WalkDir(w.workspaceDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // best-effort: a permission error on one entry shouldn't abort the whole walk
		}
		rel, relErr := filepath.Rel(w.workspaceDir, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if rel != "." && excludedByName(rel) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				w.logger.Warn("watcher: failed to watch directory", zap.String("path", path), zap.Error(err))
			}
			return nil
		}

		count++
		if count%yieldEvery == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				time.Sleep(0) // cooperative yield
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watcher: initial walk: %w", err)
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleRawEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: fsnotify error", zap.Error(err))
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleRawEvent(ev fsnotify.Event) {
	rel, err := filepath.Rel(w.workspaceDir, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	if excludedByName(rel) || w.ignore.ignores(rel) {
		return
	}

	var kind ChangeKind
	switch {
	case ev.Op&fsnotify.Create == fsnotify.Create:
		kind = Created
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !excludedByName(rel) {
				if err := w.fsw.Add(ev.Name); err != nil {
					w.logger.Warn("watcher: failed to watch new directory", zap.String("path", ev.Name), zap.Error(err))
				}
			}
			return
		}
	case ev.Op&fsnotify.Write == fsnotify.Write:
		kind = Changed
	case ev.Op&fsnotify.Remove == fsnotify.Remove, ev.Op&fsnotify.Rename == fsnotify.Rename:
		kind = Deleted
	default:
		return
	}

	if kind != Deleted {
		if info, err := os.Stat(ev.Name); err == nil && info.Size() > maxWatchedFileSize {
			return
		}
	}

	w.deb.add(changeKey{path: ev.Name, kind: kind})
}

func (w *Watcher) flush(key changeKey) {
	if w.OnFileEvent != nil {
		w.OnFileEvent(Event{Path: key.path, Kind: key.kind})
	}
}

// Stop halts the event loop and releases the underlying fsnotify watcher.
// Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.deb.stop()
		err = w.fsw.Close()
	})
	return err
}
