package lspclient

import (
	"context"
	"os"
	"time"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const defaultReadyTimeout = 1 * time.Second

// initialize performs the initialize/initialized handshake. Readiness is
// not observable from the protocol itself — initialize's response only
// promises capabilities, not that indexing has finished — so after the
// handshake completes the client waits out a configurable grace period
// before returning.
func (c *Client) initialize(ctx context.Context, workspaceDir string, readyTimeout time.Duration) error {
	if readyTimeout <= 0 {
		readyTimeout = defaultReadyTimeout
	}

	root := uri.File(workspaceDir)
	rootPath := workspaceDir
	params := &protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		RootURI:   protocol.DocumentURI(root),
		RootPath:  rootPath,
		ClientInfo: &protocol.ClientInfo{
			Name:    "mcplsp-bridge",
			Version: "0.1.0",
		},
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: string(root), Name: rootPath},
		},
		Capabilities: protocol.ClientCapabilities{
			Workspace: &protocol.WorkspaceClientCapabilities{
				Configuration:    true,
				WorkspaceFolders: true,
				ApplyEdit:        true,
				DidChangeWatchedFiles: &protocol.DidChangeWatchedFilesWorkspaceClientCapabilities{
					DynamicRegistration: true,
				},
				Symbol: &protocol.WorkspaceClientCapabilitiesSymbol{
					DynamicRegistration: true,
				},
			},
			TextDocument: &protocol.TextDocumentClientCapabilities{
				Synchronization: &protocol.TextDocumentSyncClientCapabilities{
					DynamicRegistration: true,
					DidSave:             true,
				},
				PublishDiagnostics: &protocol.PublishDiagnosticsClientCapabilities{
					RelatedInformation: true,
				},
				Hover: &protocol.HoverClientCapabilities{
					ContentFormat: []protocol.MarkupKind{protocol.PlainText, protocol.Markdown},
				},
				References: &protocol.ReferencesClientCapabilities{
					DynamicRegistration: true,
				},
				Rename: &protocol.RenameClientCapabilities{
					DynamicRegistration: true,
				},
			},
		},
	}

	var result protocol.InitializeResult
	if err := c.Call(ctx, "initialize", params, &result); err != nil {
		return err
	}

	if err := c.Notify("initialized", &protocol.InitializedParams{}); err != nil {
		return err
	}

	select {
	case <-time.After(readyTimeout):
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}
