package lspclient

import (
	"context"
	"encoding/json"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// registerDefaultHandlers installs the minimal, always-correct answers to
// every server-initiated request and notification this says a client
// must be prepared to receive, even though the MCP tools never trigger
// them directly.
func (c *Client) registerDefaultHandlers() {
	c.RegisterServerRequestHandler("workspace/applyEdit", c.handleApplyEdit)
	c.RegisterServerRequestHandler("workspace/configuration", c.handleConfiguration)
	c.RegisterServerRequestHandler("client/registerCapability", c.handleRegisterCapability)
	c.RegisterServerRequestHandler("client/unregisterCapability", c.handleUnregisterCapability)
	c.RegisterServerRequestHandler("window/workDoneProgress/create", c.handleWorkDoneProgressCreate)

	c.RegisterNotificationHandler("window/showMessage", c.handleShowMessage)
	c.RegisterNotificationHandler("window/logMessage", c.handleLogMessage)
	c.RegisterNotificationHandler("textDocument/publishDiagnostics", c.handlePublishDiagnostics)
	c.RegisterNotificationHandler("$/progress", func(json.RawMessage) {})
}

// handleApplyEdit always reports the edit as applied. The MCP tools that
// mutate files (rename_symbol, edit_file) apply WorkspaceEdits themselves
// and re-read the file from disk afterward, so there is nothing more this
// client can usefully verify before acknowledging.
func (c *Client) handleApplyEdit(ctx context.Context, params json.RawMessage) (any, error) {
	return &protocol.ApplyWorkspaceEditResult{Applied: true}, nil
}

// handleConfiguration replies with one empty settings object per requested
// item, since this bridge carries no server-specific configuration of its
// own.
func (c *Client) handleConfiguration(ctx context.Context, params json.RawMessage) (any, error) {
	var req struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}
	out := make([]map[string]any, len(req.Items))
	for i := range out {
		out[i] = map[string]any{}
	}
	return out, nil
}

func (c *Client) handleRegisterCapability(ctx context.Context, params json.RawMessage) (any, error) {
	var req registerCapabilityParams
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}

	for _, reg := range req.Registrations {
		if reg.Method != "workspace/didChangeWatchedFiles" {
			continue
		}
		var opts didChangeWatchedFilesOptions
		if err := json.Unmarshal(reg.RegisterOptions, &opts); err != nil {
			c.logger.Warn("lsp: malformed didChangeWatchedFiles registration", zap.Error(err))
			continue
		}
		watchers := make([]FileSystemWatcher, 0, len(opts.Watchers))
		for _, w := range opts.Watchers {
			kind := WatchCreate | WatchChange | WatchDelete
			if w.Kind != nil {
				kind = WatchKind(*w.Kind)
			}
			watchers = append(watchers, FileSystemWatcher{
				GlobPattern: parseGlobPattern(w.GlobPattern),
				Kind:        WatchKind(kind),
			})
		}

		c.watchMu.Lock()
		h := c.watchHandler
		c.watchMu.Unlock()
		if h != nil {
			h(reg.ID, watchers)
		}
	}

	return nil, nil
}

func (c *Client) handleUnregisterCapability(ctx context.Context, params json.RawMessage) (any, error) {
	return nil, nil
}

func (c *Client) handleWorkDoneProgressCreate(ctx context.Context, params json.RawMessage) (any, error) {
	return nil, nil
}

func (c *Client) handleShowMessage(params json.RawMessage) {
	var msg protocol.ShowMessageParams
	if err := json.Unmarshal(params, &msg); err != nil {
		return
	}
	c.logger.Info("lsp: window/showMessage", zap.Int("type", int(msg.Type)), zap.String("message", msg.Message))
}

func (c *Client) handleLogMessage(params json.RawMessage) {
	var msg protocol.LogMessageParams
	if err := json.Unmarshal(params, &msg); err != nil {
		return
	}
	c.logger.Debug("lsp: window/logMessage", zap.Int("type", int(msg.Type)), zap.String("message", msg.Message))
}

func (c *Client) handlePublishDiagnostics(params json.RawMessage) {
	var p protocol.PublishDiagnosticsParams
	if err := json.Unmarshal(params, &p); err != nil {
		c.logger.Warn("lsp: malformed publishDiagnostics", zap.Error(err))
		return
	}
	c.diags.set(p.URI, p.Diagnostics)
}
