// Command mcplspbridge drives a language-server child process and exposes
// its capabilities as MCP tools over stdio.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcplsp/bridge/internal/clierr"
	"github.com/mcplsp/bridge/internal/logging"
	"github.com/mcplsp/bridge/internal/lspclient"
	"github.com/mcplsp/bridge/internal/mcpserver"
	"github.com/mcplsp/bridge/internal/pathutil"
	"github.com/mcplsp/bridge/internal/tools"
	"github.com/mcplsp/bridge/internal/watcher"
)

var (
	workspaceDir   string
	lspCommand     string
	readyTimeout   time.Duration
	requestTimeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcplsp-bridge",
		Short: "Bridge a language server's capabilities into MCP tools",
		Long: `mcplsp-bridge spawns a language server, drives its JSON-RPC protocol, and
exposes definition/references/hover/diagnostics/rename/edit as MCP tools
callable by an MCP-speaking collaborator over stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBridge,
	}

	rootCmd.Flags().StringVar(&workspaceDir, "workspace", "", "workspace root directory (required, must exist)")
	rootCmd.Flags().StringVar(&lspCommand, "lsp", "", "language-server command to launch (required)")
	rootCmd.Flags().DurationVar(&readyTimeout, "ready-timeout", time.Second, "time to wait after initialized before accepting tool calls")
	rootCmd.Flags().DurationVar(&requestTimeout, "request-timeout", 30*time.Second, "per-request timeout waiting on the language server")
	_ = rootCmd.MarkFlagRequired("workspace")
	_ = rootCmd.MarkFlagRequired("lsp")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, clierr.ConfigError(err.Error()))
		os.Exit(1)
	}
}

func runBridge(cmd *cobra.Command, args []string) error {
	lspArgs := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		lspArgs = args[dash:]
	} else {
		lspArgs = nil
	}

	info, err := os.Stat(workspaceDir)
	if err != nil || !info.IsDir() {
		msg := fmt.Sprintf("workspace directory %q does not exist", workspaceDir)
		fmt.Fprint(os.Stderr, clierr.ConfigError(msg))
		os.Exit(1)
	}

	registry, err := logging.NewRegistry()
	if err != nil {
		fmt.Fprint(os.Stderr, clierr.ConfigError(err.Error()))
		os.Exit(1)
	}
	logger := registry.For("bridge")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := lspclient.Start(ctx, lspCommand, lspArgs, workspaceDir, lspclient.Options{
		Logger:         registry.For("lspclient"),
		ReadyTimeout:   readyTimeout,
		RequestTimeout: requestTimeout,
	})
	if err != nil {
		fmt.Fprint(os.Stderr, clierr.ConfigError(fmt.Sprintf("starting language server: %v", err)))
		os.Exit(1)
	}

	watchLogger := registry.For("watcher")
	w, err := watcher.New(workspaceDir, watchLogger)
	if err != nil {
		fmt.Fprint(os.Stderr, clierr.ConfigError(fmt.Sprintf("creating workspace watcher: %v", err)))
		os.Exit(1)
	}

	wireWatcherAndClient(ctx, w, client, workspaceDir, logger)

	if err := w.Walk(ctx); err != nil {
		fmt.Fprint(os.Stderr, clierr.ConfigError(fmt.Sprintf("starting workspace watch: %v", err)))
		os.Exit(1)
	}

	toolset := tools.New(client, workspaceDir)
	server := mcpserver.New(toolset, registry.For("mcpserver"))

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down on signal")
	case err := <-serverErrCh:
		if err != nil {
			logger.Error("mcp server exited with error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.Stop(); err != nil {
		logger.Warn("stopping watcher", zap.Error(err))
	}
	if err := client.Close(shutdownCtx); err != nil {
		logger.Warn("closing language server", zap.Error(err))
	}

	return nil
}

// wireWatcherAndClient implements the event-handling policy and
// dynamic-registration bridging between the filesystem watcher and the
// LSP client, neither of which knows about the other directly.
func wireWatcherAndClient(ctx context.Context, w *watcher.Watcher, client *lspclient.Client, workspaceDir string, logger *zap.Logger) {
	openedInitialWalk := false

	client.SetWatchRegistrationHandler(func(registrationID string, watchers []lspclient.FileSystemWatcher) {
		patterns := make([]watcher.RegisteredPattern, 0, len(watchers))
		for _, fw := range watchers {
			patterns = append(patterns, watcher.RegisteredPattern{
				Glob:     fw.GlobPattern,
				KindMask: int(fw.Kind),
			})
		}
		w.SetPatterns(registrationID, patterns)

		if !openedInitialWalk {
			openedInitialWalk = true
			go runInitialOpenWalk(ctx, w, client, workspaceDir, logger)
		}
	})

	w.OnFileEvent = func(ev watcher.Event) {
		relPath := relativeToWorkspace(workspaceDir, ev.Path)
		if !w.MatchesRegisteredPattern(relPath, ev.Kind) {
			return
		}

		switch ev.Kind {
		case watcher.Created:
			if err := client.OpenFile(ctx, ev.Path); err != nil {
				logger.Warn("opening created file", zap.String("path", ev.Path), zap.Error(err))
			}
		case watcher.Changed:
			if client.IsFileOpen(ev.Path) {
				if err := client.NotifyChange(ctx, ev.Path); err != nil {
					logger.Warn("notifying change", zap.String("path", ev.Path), zap.Error(err))
				}
				return
			}
			notifyWatchedFileChange(client, ev, logger)
		default:
			notifyWatchedFileChange(client, ev, logger)
		}
	}
}

// relativeToWorkspace converts an absolute path under workspaceDir into the
// workspace-relative form pattern matching operates on, falling back to the
// absolute path if it isn't actually inside workspaceDir.
func relativeToWorkspace(workspaceDir, path string) string {
	rel, err := filepath.Rel(workspaceDir, path)
	if err != nil {
		return path
	}
	return rel
}

// notifyWatchedFileChange sends workspace/didChangeWatchedFiles for an
// event the client has no open buffer for.
func notifyWatchedFileChange(client *lspclient.Client, ev watcher.Event, logger *zap.Logger) {
	type fileEvent struct {
		URI  string `json:"uri"`
		Type int    `json:"type"`
	}
	type didChangeWatchedFilesParams struct {
		Changes []fileEvent `json:"changes"`
	}

	changeType := 1
	switch ev.Kind {
	case watcher.Changed:
		changeType = 2
	case watcher.Deleted:
		changeType = 3
	}

	err := client.Notify("workspace/didChangeWatchedFiles", didChangeWatchedFilesParams{
		Changes: []fileEvent{{URI: pathutil.ToURI(ev.Path), Type: changeType}},
	})
	if err != nil {
		logger.Warn("sending didChangeWatchedFiles", zap.String("path", ev.Path), zap.Error(err))
	}
}

// runInitialOpenWalk opens every workspace file matching at least one
// registered watch pattern, yielding every 100 opens so a large workspace
// doesn't stall the bridge's startup.
func runInitialOpenWalk(ctx context.Context, w *watcher.Watcher, client *lspclient.Client, workspaceDir string, logger *zap.Logger) {
	const yieldEvery = 100
	opened := 0

	err := filepath.WalkDir(workspaceDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // best-effort: skip unreadable entries rather than aborting the walk
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(workspaceDir, path)
		if relErr != nil {
			rel = path
		}
		if !w.MatchesAnyPattern(rel) {
			return nil
		}

		if err := client.OpenFile(ctx, path); err != nil {
			logger.Warn("initial walk: opening file", zap.String("path", path), zap.Error(err))
		}
		opened++
		if opened%yieldEvery == 0 {
			select {
			case <-time.After(10 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	if err != nil && err != context.Canceled {
		logger.Warn("initial open walk stopped early", zap.Error(err))
	}
}
