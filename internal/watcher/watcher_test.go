package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkAndDetectChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "x.js"), []byte("x"), 0o644))

	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var events []Event
	w.OnFileEvent = func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}

	require.NoError(t, w.Walk(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n\nvar X = 1\n"), 0o644))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(events)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	assert.Equal(t, Changed, events[0].Kind)
}

func TestMatchesRegisteredPattern(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.False(t, w.MatchesRegisteredPattern("main.go", Changed))

	w.SetPatterns("reg-1", []RegisteredPattern{{Glob: "**/*.go", KindMask: 1 | 2 | 4}})
	assert.True(t, w.MatchesRegisteredPattern("pkg/main.go", Changed))
	assert.False(t, w.MatchesRegisteredPattern("pkg/main.ts", Changed))

	w.SetPatterns("reg-1", []RegisteredPattern{{Glob: "**/*.go", KindMask: 1}}) // Created only
	assert.False(t, w.MatchesRegisteredPattern("pkg/main.go", Changed))
	assert.True(t, w.MatchesRegisteredPattern("pkg/main.go", Created))

	w.SetPatterns("reg-1", nil)
	assert.False(t, w.MatchesRegisteredPattern("pkg/main.go", Created))
}
