package tools

import (
	"go.lsp.dev/protocol"

	"github.com/mcplsp/bridge/internal/lspclient"
)

// Toolset binds the six MCP operations to one running LSP client and the
// workspace it was started against.
type Toolset struct {
	Client       *lspclient.Client
	WorkspaceDir string
}

func New(client *lspclient.Client, workspaceDir string) *Toolset {
	return &Toolset{Client: client, WorkspaceDir: workspaceDir}
}

// textDocumentIdentifier, position and referenceContext are request-side
// param shapes kept local to this package rather than borrowed from
// go.lsp.dev/protocol: they need no server-side validation beyond correct
// JSON field names, and defining them here avoids depending on the exact
// nested request-param types of a library version this exercise cannot
// compile-check against.
type textDocumentIdentifier struct {
	URI protocol.DocumentURI `json:"uri"`
}

type position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

type workspaceSymbolParams struct {
	Query string `json:"query"`
}

type referenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

type referenceParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
	Context      referenceContext       `json:"context"`
}

type hoverParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
}

type renameParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
	NewName      string                 `json:"newName"`
}

type lspRange struct {
	Start position `json:"start"`
	End   position `json:"end"`
}

type locationResult struct {
	URI   protocol.DocumentURI `json:"uri"`
	Range lspRange             `json:"range"`
}
