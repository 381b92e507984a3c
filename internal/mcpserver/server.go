// Package mcpserver exposes the six bridge operations in internal/tools as
// MCP tools over stdio, constructing a single *mcp.Server and registering
// each tool with mcp.AddTool.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/mcplsp/bridge/internal/tools"
)

// Server wraps an *mcp.Server wired to a Toolset.
type Server struct {
	mcp     *mcp.Server
	toolset *tools.Toolset
	logger  *zap.Logger
}

// New builds a Server and registers all tools.
func New(toolset *tools.Toolset, logger *zap.Logger) *Server {
	s := &Server{
		toolset: toolset,
		logger:  logger,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "mcplsp-bridge",
			Version: "0.1.0",
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP requests over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func errorResult(err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}, nil, nil
}

type definitionArgs struct {
	SymbolName string `json:"symbolName" jsonschema:"the symbol name to look up"`
}

type referencesArgs struct {
	SymbolName string `json:"symbolName" jsonschema:"the symbol name to look up"`
}

type hoverArgs struct {
	FilePath string `json:"filePath" jsonschema:"path to the source file"`
	Line     int    `json:"line" jsonschema:"1-indexed line number"`
	Column   int    `json:"column" jsonschema:"1-indexed column number"`
}

type diagnosticsArgs struct {
	FilePath        string `json:"filePath" jsonschema:"path to the source file"`
	ContextLines    int    `json:"contextLines,omitempty" jsonschema:"lines of context around each diagnostic, default 5"`
	ShowLineNumbers *bool  `json:"showLineNumbers,omitempty" jsonschema:"whether to render a line-number gutter, default true"`
}

type renameSymbolArgs struct {
	FilePath string `json:"filePath" jsonschema:"path to the source file"`
	Line     int    `json:"line" jsonschema:"1-indexed line number"`
	Column   int    `json:"column" jsonschema:"1-indexed column number"`
	NewName  string `json:"newName" jsonschema:"the replacement identifier"`
}

type editEntry struct {
	StartLine int    `json:"startLine" jsonschema:"1-indexed, inclusive start line"`
	EndLine   int    `json:"endLine" jsonschema:"1-indexed, inclusive end line"`
	NewText   string `json:"newText" jsonschema:"replacement text for the range"`
}

type editFileArgs struct {
	FilePath string      `json:"filePath" jsonschema:"path to the source file"`
	Edits    []editEntry `json:"edits" jsonschema:"the line ranges to replace"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "definition",
		Description: "Look up a symbol's definition and render the surrounding declaration",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args definitionArgs) (*mcp.CallToolResult, any, error) {
		out, err := s.toolset.Definition(ctx, args.SymbolName)
		if err != nil {
			s.logger.Error("definition failed", zap.String("symbolName", args.SymbolName), zap.Error(err))
			return errorResult(err)
		}
		return textResult(out)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "references",
		Description: "Find all references to a symbol, grouped by file with surrounding context",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args referencesArgs) (*mcp.CallToolResult, any, error) {
		out, err := s.toolset.References(ctx, args.SymbolName)
		if err != nil {
			s.logger.Error("references failed", zap.String("symbolName", args.SymbolName), zap.Error(err))
			return errorResult(err)
		}
		return textResult(out)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "hover",
		Description: "Get hover information for a position in a file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args hoverArgs) (*mcp.CallToolResult, any, error) {
		out, err := s.toolset.Hover(ctx, args.FilePath, args.Line, args.Column)
		if err != nil {
			s.logger.Error("hover failed", zap.String("filePath", args.FilePath), zap.Error(err))
			return errorResult(err)
		}
		return textResult(out)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "diagnostics",
		Description: "Fetch diagnostics published for a file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args diagnosticsArgs) (*mcp.CallToolResult, any, error) {
		contextLines := args.ContextLines
		if contextLines == 0 {
			contextLines = 5
		}
		showLineNumbers := true
		if args.ShowLineNumbers != nil {
			showLineNumbers = *args.ShowLineNumbers
		}
		out, err := s.toolset.Diagnostics(ctx, args.FilePath, contextLines, showLineNumbers)
		if err != nil {
			s.logger.Error("diagnostics failed", zap.String("filePath", args.FilePath), zap.Error(err))
			return errorResult(err)
		}
		return textResult(out)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "rename_symbol",
		Description: "Rename the symbol at a position and apply the resulting edits",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args renameSymbolArgs) (*mcp.CallToolResult, any, error) {
		out, err := s.toolset.RenameSymbol(ctx, args.FilePath, args.Line, args.Column, args.NewName)
		if err != nil {
			s.logger.Error("rename_symbol failed", zap.String("filePath", args.FilePath), zap.Error(err))
			return errorResult(err)
		}
		return textResult(out)
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "edit_file",
		Description: "Replace one or more line ranges in a file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args editFileArgs) (*mcp.CallToolResult, any, error) {
		if len(args.Edits) == 0 {
			return errorResult(fmt.Errorf("edit_file: at least one edit is required"))
		}
		inputs := make([]tools.EditInput, len(args.Edits))
		for i, e := range args.Edits {
			inputs[i] = tools.EditInput{StartLine: e.StartLine, EndLine: e.EndLine, NewText: e.NewText}
		}
		out, err := s.toolset.EditFile(ctx, args.FilePath, inputs)
		if err != nil {
			s.logger.Error("edit_file failed", zap.String("filePath", args.FilePath), zap.Error(err))
			return errorResult(err)
		}
		return textResult(out)
	})
}
