package lspclient

import (
	"sync"

	"go.lsp.dev/protocol"
)

// openFileEntry tracks the version number the registry last sent for a URI
// so didChange notifications carry a strictly increasing version.
type openFileEntry struct {
	version    int32
	languageID string
}

type openFileRegistry struct {
	mu      sync.Mutex
	entries map[protocol.DocumentURI]*openFileEntry
}

func newOpenFileRegistry() *openFileRegistry {
	return &openFileRegistry{entries: map[protocol.DocumentURI]*openFileEntry{}}
}

func (r *openFileRegistry) open(uri protocol.DocumentURI, languageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[uri] = &openFileEntry{version: 1, languageID: languageID}
}

// bump returns the entry's next version, or ok=false if the URI isn't open.
func (r *openFileRegistry) bump(uri protocol.DocumentURI) (int32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[uri]
	if !ok {
		return 0, false
	}
	e.version++
	return e.version, true
}

func (r *openFileRegistry) close(uri protocol.DocumentURI) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, uri)
}

func (r *openFileRegistry) isOpen(uri protocol.DocumentURI) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[uri]
	return ok
}

func (r *openFileRegistry) allURIs() []protocol.DocumentURI {
	r.mu.Lock()
	defer r.mu.Unlock()
	uris := make([]protocol.DocumentURI, 0, len(r.entries))
	for u := range r.entries {
		uris = append(uris, u)
	}
	return uris
}
