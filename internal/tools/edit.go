package tools

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EditInput is one 1-indexed, inclusive line-range replacement requested
// by the edit_file tool.
type EditInput struct {
	StartLine int
	EndLine   int
	NewText   string
}

// EditFile validates inputs, converts them to the same Edit shape
// rename_symbol uses, then applies them via the shared splice algorithm.
func (t *Toolset) EditFile(ctx context.Context, path string, inputs []EditInput) (string, error) {
	if err := t.Client.OpenFile(ctx, path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := splitLines(string(content))
	totalLines := len(lines)

	var edits []Edit
	removed, added := 0, 0

	for _, in := range inputs {
		if in.StartLine < 1 {
			return "", fmt.Errorf("edit_file: startLine must be >= 1, got %d", in.StartLine)
		}

		if in.StartLine > totalLines {
			// Entire edit is an append: a zero-width range at end-of-file.
			lastZero := totalLines - 1
			eolChar := len(lines[lastZero])
			text := in.NewText
			if text != "" {
				text = "\n" + text
			}
			edits = append(edits, Edit{
				StartLine: lastZero, StartChar: eolChar,
				EndLine: lastZero, EndChar: eolChar,
				NewText: text,
			})
			added += lineCountOf(in.NewText)
			continue
		}

		endLine := in.EndLine
		if endLine > totalLines {
			endLine = totalLines
		}
		startZero := in.StartLine - 1
		endZero := endLine - 1
		edits = append(edits, Edit{
			StartLine: startZero, StartChar: 0,
			EndLine: endZero, EndChar: len(lines[endZero]),
			NewText: in.NewText,
		})
		removed += endZero - startZero + 1
		added += lineCountOf(in.NewText)
	}

	if err := applyEditsToFile(path, edits); err != nil {
		return "", err
	}

	return fmt.Sprintf("Lines removed: %d, lines added: %d", removed, added), nil
}

func lineCountOf(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
