package lspclient

import "fmt"

// TransportError is terminal for the session: a write failed, a header or
// body was unparseable, or EOF arrived mid-message.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string { return fmt.Sprintf("lsp transport error: %v", e.Cause) }
func (e *TransportError) Unwrap() error { return e.Cause }

// RequestError wraps an LSP error response surfaced to the caller of Call.
type RequestError struct {
	Code    int64
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("lsp request failed (%d): %s", e.Code, e.Message)
}

// FileIOError wraps a failure reading a file for open/change or writing it
// back for rename/edit application.
type FileIOError struct {
	Path  string
	Cause error
}

func (e *FileIOError) Error() string { return fmt.Sprintf("file i/o error on %s: %v", e.Path, e.Cause) }
func (e *FileIOError) Unwrap() error { return e.Cause }

// MissingOpenFileError is a programming error: notifyChange was called on
// a URI the registry has no open entry for.
type MissingOpenFileError struct {
	Path string
}

func (e *MissingOpenFileError) Error() string {
	return fmt.Sprintf("cannot notify change for unopened file: %s", e.Path)
}
