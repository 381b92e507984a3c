package tools

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.lsp.dev/protocol"

	"github.com/mcplsp/bridge/internal/pathutil"
)

const diagnosticsGracePeriod = 500 * time.Millisecond

var severityNames = map[protocol.DiagnosticSeverity]string{
	1: "Error", 2: "Warning", 3: "Information", 4: "Hint",
}

// Diagnostics waits out a grace period for a freshly-opened file's
// diagnostics to arrive, then renders whatever is published for path.
func (t *Toolset) Diagnostics(ctx context.Context, path string, contextLines int, showLineNumbers bool) (string, error) {
	if err := t.Client.OpenFile(ctx, path); err != nil {
		return "", err
	}

	select {
	case <-time.After(diagnosticsGracePeriod):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	docURI := protocol.DocumentURI(pathutil.ToURI(path))
	diags := t.Client.Diagnostics(docURI)
	if len(diags) == 0 {
		return fmt.Sprintf("No diagnostics for %s", path), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := splitLines(string(content))
	lastLine := len(lines) - 1

	var blocks []string
	for _, d := range diags {
		blocks = append(blocks, renderDiagnostic(d, lines, lastLine, contextLines, showLineNumbers))
	}
	return strings.Join(blocks, "\n\n"), nil
}

func renderDiagnostic(d protocol.Diagnostic, lines []string, lastLine, contextLines int, showLineNumbers bool) string {
	sl := int(d.Range.Start.Line)
	el := int(d.Range.End.Line)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] L%d:C%d - L%d:C%d\n",
		severityName(d.Severity), sl+1, d.Range.Start.Character+1, el+1, d.Range.End.Character+1)
	fmt.Fprintf(&b, "%s\n", d.Message)
	if d.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", d.Source)
	}
	if d.Code != nil {
		fmt.Fprintf(&b, "Code: %v\n", d.Code)
	}

	from := clampLine(sl-contextLines, lastLine)
	to := clampLine(el+contextLines, lastLine)
	if showLineNumbers {
		b.WriteString(renderGutter(lines, lineRange{from, to}))
	} else {
		for ln := from; ln <= to && ln < len(lines); ln++ {
			b.WriteString(lines[ln])
			b.WriteString("\n")
		}
	}
	return b.String()
}

func severityName(sev protocol.DiagnosticSeverity) string {
	if n, ok := severityNames[sev]; ok {
		return n
	}
	return "Unknown"
}
