package lspclient

import "encoding/json"

// WatchKind mirrors the LSP FileSystemWatcher kind bitmask (Create=1,
// Change=2, Delete=4); servers that omit it mean "all three".
type WatchKind int

const (
	WatchCreate WatchKind = 1
	WatchChange WatchKind = 2
	WatchDelete WatchKind = 4
)

// FileSystemWatcher is one entry of a workspace/didChangeWatchedFiles
// dynamic registration. GlobPattern is either a bare string or a relative
// pattern object ({baseUri, pattern}); this only requires supporting
// the bare-string form plus the "**/*", "**/*.ext", "*.ext" shapes, so the
// object form decodes but its baseUri is ignored.
type FileSystemWatcher struct {
	GlobPattern string
	Kind        WatchKind
}

type rawWatcher struct {
	GlobPattern json.RawMessage `json:"globPattern"`
	Kind        *int            `json:"kind"`
}

type rawRegistration struct {
	ID              string          `json:"id"`
	Method          string          `json:"method"`
	RegisterOptions json.RawMessage `json:"registerOptions"`
}

type registerCapabilityParams struct {
	Registrations []rawRegistration `json:"registrations"`
}

type didChangeWatchedFilesOptions struct {
	Watchers []rawWatcher `json:"watchers"`
}

// WatchRegistrationHandler receives the watcher list every time a server
// dynamically registers for workspace/didChangeWatchedFiles.
type WatchRegistrationHandler func(registrationID string, watchers []FileSystemWatcher)

// SetWatchRegistrationHandler installs the callback the workspace watcher
// uses to learn which glob patterns a server actually asked to be told
// about.
func (c *Client) SetWatchRegistrationHandler(h WatchRegistrationHandler) {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	c.watchHandler = h
}

func parseGlobPattern(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Pattern string `json:"pattern"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Pattern
	}
	return ""
}
