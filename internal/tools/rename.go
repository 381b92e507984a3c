package tools

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/mcplsp/bridge/internal/pathutil"
)

type textEditResult struct {
	Range   lspRange `json:"range"`
	NewText string   `json:"newText"`
}

type workspaceEditResult struct {
	Changes map[string][]textEditResult `json:"changes"`
}

// RenameSymbol requests a rename and applies the returned WorkspaceEdit
// itself: the server's workspace/applyEdit handler only acknowledges
// (lspclient's default handler), so the edits never take effect unless
// this tool writes them.
func (t *Toolset) RenameSymbol(ctx context.Context, path string, line, column int, newName string) (string, error) {
	if err := t.Client.OpenFile(ctx, path); err != nil {
		return "", err
	}

	var result workspaceEditResult
	params := renameParams{
		TextDocument: textDocumentIdentifier{URI: protocol.DocumentURI(pathutil.ToURI(path))},
		Position:     position{Line: uint32(line - 1), Character: uint32(column - 1)},
		NewName:      newName,
	}
	if err := t.Client.Call(ctx, "textDocument/rename", params, &result); err != nil {
		return "", err
	}

	return applyWorkspaceEdit(result)
}

func applyWorkspaceEdit(edit workspaceEditResult) (string, error) {
	var summaries []FileEditSummary
	for uri, rawEdits := range edit.Changes {
		p := pathutil.ToPath(uri)
		edits := make([]Edit, len(rawEdits))
		for i, e := range rawEdits {
			edits[i] = Edit{
				StartLine: int(e.Range.Start.Line), StartChar: int(e.Range.Start.Character),
				EndLine: int(e.Range.End.Line), EndChar: int(e.Range.End.Character),
				NewText: e.NewText,
			}
		}
		if err := applyEditsToFile(p, edits); err != nil {
			return "", err
		}
		summaries = append(summaries, FileEditSummary{Path: p, Count: len(edits)})
	}
	return summarize(summaries), nil
}
