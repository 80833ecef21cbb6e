package clipboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultResetAfter is how long Copied stays true after a successful copy.
const DefaultResetAfter = 2 * time.Second

// Copier writes summaries to the system clipboard and exposes a short-lived
// "copied" flag for the presentation layer.
type Copier struct {
	write      func(string) error
	resetAfter time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	copied bool
	gen    uint64
	timer  *time.Timer
}

// NewCopier builds a copier backed by the system clipboard.
func NewCopier(logger *slog.Logger) *Copier {
	return newCopier(clipboard.WriteAll, DefaultResetAfter, logger)
}

func newCopier(write func(string) error, resetAfter time.Duration, logger *slog.Logger) *Copier {
	return &Copier{
		write:      write,
		resetAfter: resetAfter,
		logger:     logger.With("component", "clipboard.copier"),
	}
}

// Copy writes text to the clipboard. Failures are logged and reported as
// false without touching the copied flag.
func (c *Copier) Copy(text string) bool {
	if err := c.write(text); err != nil {
		c.logger.Warn("failed to copy text", "error", err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.copied = true
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.resetAfter, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen {
			c.copied = false
		}
	})
	return true
}

// Copied reports whether a copy succeeded within the reset window.
func (c *Copier) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Supported reports whether a clipboard utility is available.
func Supported() bool {
	return !clipboard.Unsupported
}
