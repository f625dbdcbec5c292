// Package cmdlogger provides the slog handler used by the vff command,
// writing bare messages instead of structured records.
package cmdlogger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Handler writes errors to stderr and everything else to stdout.
type Handler struct {
	stdout io.Writer
	stderr io.Writer

	mu         sync.Mutex
	hasErrored bool
	level      slog.Leveler
}

var _ slog.Handler = &Handler{}

func New(stdout, stderr io.Writer) *Handler {
	return &Handler{
		stdout: stdout,
		stderr: stderr,
		level:  slog.LevelInfo,
	}
}

func (c *Handler) SetLevel(level slog.Leveler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// HasErrored returns true if there have been any calls to Handle with
// a level of [slog.LevelError].
func (c *Handler) HasErrored() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasErrored
}

func (c *Handler) writer(level slog.Level) io.Writer {
	if level >= slog.LevelError {
		return c.stderr
	}
	return c.stdout
}

func (c *Handler) Enabled(_ context.Context, level slog.Level) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if level >= slog.LevelError {
		c.hasErrored = true
	}
	return level >= c.level.Level()
}

func (c *Handler) Handle(_ context.Context, record slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if record.Level >= slog.LevelError {
		c.hasErrored = true
	}

	_, err := fmt.Fprintln(c.writer(record.Level), record.Message)
	return err
}

func (c *Handler) WithAttrs(_ []slog.Attr) slog.Handler {
	panic("not supported")
}

func (c *Handler) WithGroup(_ string) slog.Handler {
	panic("not supported")
}
