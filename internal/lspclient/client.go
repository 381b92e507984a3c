// Package lspclient drives a single language-server child process over
// go.lsp.dev/jsonrpc2: the initialize handshake, open file tracking,
// diagnostics, and the server-initiated requests a well behaved client
// must answer.
package lspclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"sync"
	"time"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 30 * time.Second

// NotificationHandler reacts to a server-to-client notification.
type NotificationHandler func(params json.RawMessage)

// ServerRequestHandler answers a server-to-client request. Returning an
// error sends an error response with code jsonrpc2.InternalError.
type ServerRequestHandler func(ctx context.Context, params json.RawMessage) (any, error)

// Options configures a Client beyond the required command and workspace.
type Options struct {
	RequestTimeout time.Duration
	ReadyTimeout   time.Duration
	Logger         *zap.Logger
}

// Client owns one child language-server process and the bookkeeping this
// requires around it: the jsonrpc2 connection, open files, diagnostics,
// and the handler tables for server-initiated traffic.
type Client struct {
	cmd    *exec.Cmd
	conn   jsonrpc2.Conn
	logger *zap.Logger

	requestTimeout time.Duration

	notifyMu sync.RWMutex
	notify   map[string]NotificationHandler

	serveMu sync.RWMutex
	serve   map[string]ServerRequestHandler

	files *openFileRegistry
	diags *diagnosticsStore

	watchMu      sync.Mutex
	watchHandler WatchRegistrationHandler

	closeOnce sync.Once
}

// rwc combines a child process's stdin/stdout pipes (or an in-memory pipe
// pair in tests) into the io.ReadWriteCloser jsonrpc2.NewStream expects.
type rwc struct {
	r io.ReadCloser
	w io.WriteCloser
}

func (c *rwc) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *rwc) Write(p []byte) (int, error) { return c.w.Write(p) }
func (c *rwc) Close() error {
	werr := c.w.Close()
	rerr := c.r.Close()
	if werr != nil {
		return werr
	}
	return rerr
}

// Start spawns the language server named by command (with args) rooted at
// workspaceDir, performs the initialize/initialized handshake, and
// registers the default server-request and notification handlers. The
// returned Client's connection is already pumping in the background.
func Start(ctx context.Context, command string, args []string, workspaceDir string, opts Options) (*Client, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = workspaceDir

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &TransportError{Cause: err}
	}

	c := newClient(&rwc{r: stdout, w: stdin}, opts)
	c.cmd = cmd

	go c.drainStderr(stderr)

	if err := c.initialize(ctx, workspaceDir, opts.ReadyTimeout); err != nil {
		c.killAndWait()
		return nil, err
	}

	return c, nil
}

// newClient wires a Client over an arbitrary io.ReadWriteCloser and
// registers the default handlers, without spawning a process. Start uses
// it for the real child-process transport; tests use it directly over an
// in-memory pipe to exercise dispatch without a real language server.
func newClient(stream io.ReadWriteCloser, opts Options) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Client{
		logger:         opts.Logger,
		requestTimeout: opts.RequestTimeout,
		notify:         map[string]NotificationHandler{},
		serve:          map[string]ServerRequestHandler{},
		files:          newOpenFileRegistry(),
		diags:          newDiagnosticsStore(),
	}
	c.registerDefaultHandlers()

	c.conn = jsonrpc2.NewConn(jsonrpc2.NewStream(stream))
	c.conn.Go(context.Background(), c.handler())
	return c
}

func (c *Client) drainStderr(r io.Reader) {
	sc := newLineScanner(r)
	for sc.Scan() {
		c.logger.Debug("lsp server stderr", zap.String("line", sc.Text()))
	}
}

// handler dispatches every server-to-client request and notification
// through the notify/serve tables, replying to every call (and, mirroring
// the way an LSP server answers its own notifications, every notification
// too — reply is harmless on messages with no id).
func (c *Client) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		c.serveMu.RLock()
		h, ok := c.serve[req.Method()]
		c.serveMu.RUnlock()
		if ok {
			result, err := h(ctx, json.RawMessage(req.Params()))
			if err != nil {
				return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InternalError, Message: err.Error()})
			}
			return reply(ctx, result, nil)
		}

		c.notifyMu.RLock()
		nh, ok := c.notify[req.Method()]
		c.notifyMu.RUnlock()
		if ok {
			nh(json.RawMessage(req.Params()))
			return reply(ctx, nil, nil)
		}

		c.logger.Debug("lsp: unhandled method", zap.String("method", req.Method()))
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}
}

// RegisterNotificationHandler installs (or replaces) the handler for a
// server-to-client notification method.
func (c *Client) RegisterNotificationHandler(method string, h NotificationHandler) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.notify[method] = h
}

// RegisterServerRequestHandler installs (or replaces) the handler for a
// server-to-client request method.
func (c *Client) RegisterServerRequestHandler(method string, h ServerRequestHandler) {
	c.serveMu.Lock()
	defer c.serveMu.Unlock()
	c.serve[method] = h
}

// Call sends a request and blocks until the matching response arrives, the
// context is done, or the per-request timeout elapses, whichever comes
// first.
func (c *Client) Call(ctx context.Context, method string, params any, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	_, err := c.conn.Call(ctx, method, params, result)
	if err == nil {
		return nil
	}

	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return &RequestError{Code: int64(rpcErr.Code), Message: rpcErr.Message}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &TransportError{Cause: err}
}

// Notify sends a notification; there is no response to wait for.
func (c *Client) Notify(method string, params any) error {
	if err := c.conn.Notify(context.Background(), method, params); err != nil {
		return &TransportError{Cause: err}
	}
	return nil
}

// Diagnostics returns the last-published diagnostics for a URI. A later
// publishDiagnostics for that URI replaces the set entirely; it never
// merges with the prior one.
func (c *Client) Diagnostics(uri protocol.DocumentURI) []protocol.Diagnostic {
	return c.diags.get(uri)
}

// AllDiagnostics returns every URI with currently published diagnostics.
func (c *Client) AllDiagnostics() map[protocol.DocumentURI][]protocol.Diagnostic {
	return c.diags.all()
}

func procAlive(cmd *exec.Cmd) bool {
	return cmd.Process != nil && cmd.ProcessState == nil
}

func (c *Client) killAndWait() {
	if procAlive(c.cmd) {
		_ = c.cmd.Process.Kill()
	}
	_ = c.cmd.Wait()
}
