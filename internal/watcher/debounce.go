package watcher

import (
	"sync"
	"time"
)

// changeKey identifies one (path, change kind) pair so a rapid burst of
// writes to the same file collapses into one flush, but a create followed
// by a delete on the same path still fires twice.
type changeKey struct {
	path string
	kind ChangeKind
}

// debouncer resets a per-key timer on every Add, keying on (path, kind)
// instead of path alone so distinct event kinds for the same file don't
// cancel each other.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[changeKey]*time.Timer
	fire    func(changeKey)
	stopped bool
}

func newDebouncer(delay time.Duration, fire func(changeKey)) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: map[changeKey]*time.Timer{},
		fire:   fire,
	}
}

func (d *debouncer) add(key changeKey) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		d.fire(key)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for _, t := range d.timers {
		t.Stop()
	}
	d.timers = map[changeKey]*time.Timer{}
}
