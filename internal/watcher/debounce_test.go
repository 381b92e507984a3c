package watcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_BurstCollapsesToOneFlush(t *testing.T) {
	var mu sync.Mutex
	var fired []changeKey

	d := newDebouncer(100*time.Millisecond, func(key changeKey) {
		mu.Lock()
		fired = append(fired, key)
		mu.Unlock()
	})
	defer d.stop()

	key := changeKey{path: "/repo/main.go", kind: Changed}
	d.add(key)
	time.Sleep(20 * time.Millisecond)
	d.add(key)
	time.Sleep(20 * time.Millisecond)
	d.add(key)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) > 0
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond) // give any spurious extra flush a chance to land

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []changeKey{key}, fired)
}

func TestDebouncer_DifferentKindsDoNotCollapse(t *testing.T) {
	var mu sync.Mutex
	var fired []changeKey

	d := newDebouncer(50*time.Millisecond, func(key changeKey) {
		mu.Lock()
		fired = append(fired, key)
		mu.Unlock()
	})
	defer d.stop()

	created := changeKey{path: "/repo/main.go", kind: Created}
	deleted := changeKey{path: "/repo/main.go", kind: Deleted}
	d.add(created)
	d.add(deleted)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) == 2
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []changeKey{created, deleted}, fired)
}

func TestDebouncer_StopSuppressesPendingFlush(t *testing.T) {
	var mu sync.Mutex
	fired := false

	d := newDebouncer(50*time.Millisecond, func(key changeKey) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	d.add(changeKey{path: "/repo/main.go", kind: Changed})
	d.stop()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}
