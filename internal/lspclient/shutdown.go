package lspclient

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultShutdownGrace = 2 * time.Second

// Close performs the shutdown request / exit notification sequence and
// waits up to grace for the child process to exit on its own before
// force-killing it. Close is safe to call more than once.
func (c *Client) Close(ctx context.Context) error {
	var closeErr error
	c.closeOnce.Do(func() {
		closeErr = c.doClose(ctx)
	})
	return closeErr
}

func (c *Client) doClose(ctx context.Context) error {
	if err := c.CloseAllFiles(ctx); err != nil {
		c.logger.Debug("lsp: closing open files", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Call(shutdownCtx, "shutdown", nil, nil); err != nil {
		c.logger.Debug("lsp: shutdown request failed, proceeding to exit anyway", zap.Error(err))
	}

	if err := c.Notify("exit", nil); err != nil {
		c.logger.Debug("lsp: exit notification failed", zap.Error(err))
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Debug("lsp: closing connection", zap.Error(err))
	}

	if c.cmd == nil {
		// Constructed directly over a stream (tests); there is no child
		// process to wait on or kill.
		return nil
	}

	waitDone := make(chan struct{})
	go func() {
		_ = c.cmd.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(defaultShutdownGrace):
		c.logger.Warn("lsp: language server did not exit within grace period, killing")
		if procAlive(c.cmd) {
			_ = c.cmd.Process.Kill()
		}
		<-waitDone
	}

	return nil
}
