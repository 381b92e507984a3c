// Package clierr renders fatal startup errors as a colored header, the
// problem statement, and optional remediation pointers.
package clierr

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level distinguishes a hard failure from an advisory warning.
type Level int

const (
	LevelError Level = iota
	LevelWarning
)

// Options configures one rendered message.
type Options struct {
	Level       Level
	Context     string
	Problem     string
	Suggestions []string
	NoColor     bool
}

// Format renders Options into a symbol-prefixed style.
func Format(opts Options) string {
	var b strings.Builder

	var headerColor *color.Color
	symbol := "❌"
	if opts.Level == LevelWarning {
		headerColor = color.New(color.FgYellow, color.Bold)
		symbol = "⚠️"
	} else {
		headerColor = color.New(color.FgRed, color.Bold)
	}
	if opts.NoColor {
		headerColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range opts.Suggestions {
			fmt.Fprintf(&b, "   → %s\n", s)
		}
	}

	return b.String()
}

// Write writes a formatted message to w.
func Write(w io.Writer, opts Options) {
	fmt.Fprint(w, Format(opts))
}

// ConfigError renders the ConfigError kind: a missing/invalid CLI
// argument or workspace directory, fatal at startup.
func ConfigError(message string) string {
	return Format(Options{
		Level:   LevelError,
		Context: "Configuration Error",
		Problem: message,
		Suggestions: []string{
			"Check --workspace points to an existing directory",
			"Check --lsp names an executable on PATH",
		},
	})
}

// TransportError renders the TransportError kind: the reader loop
// died because the child process produced a malformed or truncated
// message.
func TransportError(message string) string {
	return Format(Options{
		Level:   LevelError,
		Context: "Language Server Transport Error",
		Problem: message,
	})
}
