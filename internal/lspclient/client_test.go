package lspclient

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// harness wires a Client to a peer jsonrpc2.Conn over an in-memory pipe
// pair, so tests can play the role of the language server without
// spawning a real process.
type harness struct {
	client     *Client
	serverConn jsonrpc2.Conn
}

// newHarness starts a Client and a peer connection. serverHandler answers
// whatever the client sends the "server"; nil installs a handler that
// acknowledges everything without inspecting it.
func newHarness(t *testing.T, serverHandler jsonrpc2.Handler) *harness {
	t.Helper()
	clientToServerR, clientToServerW := io.Pipe()
	serverToClientR, serverToClientW := io.Pipe()

	c := newClient(&rwc{r: serverToClientR, w: clientToServerW}, Options{RequestTimeout: 2 * time.Second})

	serverConn := jsonrpc2.NewConn(jsonrpc2.NewStream(&rwc{r: clientToServerR, w: serverToClientW}))
	if serverHandler == nil {
		serverHandler = func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
			return reply(ctx, nil, nil)
		}
	}
	serverConn.Go(context.Background(), serverHandler)

	t.Cleanup(func() {
		_ = serverConn.Close()
	})

	return &harness{client: c, serverConn: serverConn}
}

func TestCall_RoundTrip(t *testing.T) {
	h := newHarness(t, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() != "workspace/symbol" {
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
		return reply(ctx, []map[string]any{{"name": "Foo"}}, nil)
	})

	var result []map[string]any
	err := h.client.Call(context.Background(), "workspace/symbol", map[string]string{"query": "Foo"}, &result)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Foo", result[0]["name"])
}

func TestCall_ErrorResponse(t *testing.T) {
	h := newHarness(t, func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		return reply(ctx, nil, &jsonrpc2.Error{Code: jsonrpc2.InternalError, Message: "boom"})
	})

	err := h.client.Call(context.Background(), "textDocument/hover", nil, nil)
	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "boom", reqErr.Message)
}

func TestCall_ContextCanceled(t *testing.T) {
	h := newHarness(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.client.Call(ctx, "textDocument/hover", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDispatchServerRequest_MethodNotFound(t *testing.T) {
	h := newHarness(t, nil)

	var result any
	_, err := h.serverConn.Call(context.Background(), "workspace/unknownThing", nil, &result)
	require.Error(t, err)
	var rpcErr *jsonrpc2.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, jsonrpc2.MethodNotFound, rpcErr.Code)
}

func TestRegisterCapability_ForwardsWatchedFilePatterns(t *testing.T) {
	h := newHarness(t, nil)

	var gotID string
	var gotWatchers []FileSystemWatcher
	done := make(chan struct{})
	h.client.SetWatchRegistrationHandler(func(id string, watchers []FileSystemWatcher) {
		gotID = id
		gotWatchers = watchers
		close(done)
	})

	params := json.RawMessage(`{"registrations":[{"id":"reg-1","method":"workspace/didChangeWatchedFiles","registerOptions":{"watchers":[{"globPattern":"**/*.go"}]}}]}`)
	var result any
	_, err := h.serverConn.Call(context.Background(), "client/registerCapability", params, &result)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch registration handler was not invoked")
	}

	assert.Equal(t, "reg-1", gotID)
	require.Len(t, gotWatchers, 1)
	assert.Equal(t, "**/*.go", gotWatchers[0].GlobPattern)
	assert.Equal(t, WatchCreate|WatchChange|WatchDelete, gotWatchers[0].Kind)
}

func TestPublishDiagnostics_OverwritesPriorSet(t *testing.T) {
	h := newHarness(t, nil)

	send := func(message string) {
		require.NoError(t, h.serverConn.Notify(context.Background(), "textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
			URI: protocol.DocumentURI("file:///a.go"),
			Diagnostics: []protocol.Diagnostic{
				{
					Range: protocol.Range{
						Start: protocol.Position{Line: 0, Character: 0},
						End:   protocol.Position{Line: 0, Character: 1},
					},
					Message: message,
				},
			},
		}))
	}

	send("first")
	waitForDiagnostics(t, h.client, "first")
	send("second")
	waitForDiagnostics(t, h.client, "second")

	diags := h.client.Diagnostics(protocol.DocumentURI("file:///a.go"))
	require.Len(t, diags, 1)
	assert.Equal(t, "second", diags[0].Message)
}

func waitForDiagnostics(t *testing.T, c *Client, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		diags := c.Diagnostics(protocol.DocumentURI("file:///a.go"))
		if len(diags) == 1 && diags[0].Message == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("diagnostics never reached %q", want)
}

func TestTransportError_FailsPendingCalls(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.serverConn.Close())

	err := h.client.Call(context.Background(), "textDocument/hover", nil, nil)
	require.Error(t, err)
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}
