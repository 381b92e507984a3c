package lspclient

import (
	"context"
	"os"

	"go.lsp.dev/protocol"

	"github.com/mcplsp/bridge/internal/pathutil"
)

// OpenFile reads path from disk and sends textDocument/didOpen, registering
// it in the open-file registry at version 1. Re-opening an already open
// file is a no-op, matching the reference client's idempotent OpenFile.
func (c *Client) OpenFile(ctx context.Context, path string) error {
	docURI := protocol.DocumentURI(pathutil.ToURI(path))
	if c.files.isOpen(docURI) {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return &FileIOError{Path: path, Cause: err}
	}

	languageID := pathutil.LanguageID(path)
	if err := c.Notify("textDocument/didOpen", &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        docURI,
			LanguageID: protocol.LanguageIdentifier(languageID),
			Version:    1,
			Text:       string(content),
		},
	}); err != nil {
		return err
	}

	c.files.open(docURI, languageID)
	return nil
}

// NotifyChange re-reads path and sends a full-text textDocument/didChange
// followed by textDocument/didSave, so servers that skip indexing on
// didChange alone still see the updated content. The file must already be
// open; callers should OpenFile it first.
func (c *Client) NotifyChange(ctx context.Context, path string) error {
	docURI := protocol.DocumentURI(pathutil.ToURI(path))

	version, ok := c.files.bump(docURI)
	if !ok {
		return &MissingOpenFileError{Path: path}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return &FileIOError{Path: path, Cause: err}
	}
	text := string(content)

	if err := c.Notify("textDocument/didChange", &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                version,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: text},
		},
	}); err != nil {
		return err
	}

	return c.Notify("textDocument/didSave", &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
		Text:         text,
	})
}

// CloseFile sends textDocument/didClose, removes path from the open-file
// registry, and clears its stored diagnostics.
func (c *Client) CloseFile(ctx context.Context, path string) error {
	docURI := protocol.DocumentURI(pathutil.ToURI(path))
	if !c.files.isOpen(docURI) {
		return nil
	}
	if err := c.Notify("textDocument/didClose", &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	}); err != nil {
		return err
	}
	c.files.close(docURI)
	c.diags.set(docURI, nil)
	return nil
}

// CloseAllFiles closes every currently open file, used during shutdown.
func (c *Client) CloseAllFiles(ctx context.Context) error {
	for _, u := range c.files.allURIs() {
		if err := c.CloseFile(ctx, pathutil.ToPath(string(u))); err != nil {
			return err
		}
	}
	return nil
}

// IsFileOpen reports whether path is currently tracked as open.
func (c *Client) IsFileOpen(path string) bool {
	return c.files.isOpen(protocol.DocumentURI(pathutil.ToURI(path)))
}
