package lspclient

import (
	"sync"

	"go.lsp.dev/protocol"
)

// diagnosticsStore holds the most recent textDocument/publishDiagnostics
// payload per URI. A later publish for the same URI replaces the prior
// entry outright; publishDiagnostics is defined to report the full current
// set, never a delta.
type diagnosticsStore struct {
	mu    sync.RWMutex
	byURI map[protocol.DocumentURI][]protocol.Diagnostic
}

func newDiagnosticsStore() *diagnosticsStore {
	return &diagnosticsStore{byURI: map[protocol.DocumentURI][]protocol.Diagnostic{}}
}

func (s *diagnosticsStore) set(uri protocol.DocumentURI, diags []protocol.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byURI[uri] = diags
}

func (s *diagnosticsStore) get(uri protocol.DocumentURI) []protocol.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byURI[uri]
}

func (s *diagnosticsStore) all() map[protocol.DocumentURI][]protocol.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[protocol.DocumentURI][]protocol.Diagnostic, len(s.byURI))
	for k, v := range s.byURI {
		out[k] = v
	}
	return out
}
