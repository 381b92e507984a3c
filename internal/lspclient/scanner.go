package lspclient

import (
	"bufio"
	"io"
)

// newLineScanner wraps bufio.Scanner with a larger buffer since some
// language servers emit long single-line stderr diagnostics (stack traces,
// JSON blobs) that would otherwise trip bufio.Scanner's default token limit.
func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}
