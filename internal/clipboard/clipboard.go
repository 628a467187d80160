// Package clipboard copies clone URLs to the system clipboard and shows a
// transient confirmation in the terminal.
package clipboard

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-portfolio/internal/errors"
)

const (
	// ToastDuration is how long the confirmation stays on screen
	ToastDuration = 3 * time.Second

	clearLine = "\r\033[K"
)

var errUnsupported = stderrors.New("no clipboard utility available")

var toastStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(lipgloss.Color("#22C55E")).
	Padding(0, 2)

// WriteFunc writes text to a clipboard
type WriteFunc func(text string) error

// Copier writes to the clipboard and confirms with a toast
type Copier struct {
	write    WriteFunc
	out      io.Writer
	message  string
	duration time.Duration
	logger   logrus.FieldLogger
}

// NewCopier creates a Copier backed by the system clipboard
func NewCopier(out io.Writer, message string, logger logrus.FieldLogger) *Copier {
	return &Copier{
		write:    systemWrite,
		out:      out,
		message:  message,
		duration: ToastDuration,
		logger:   logger,
	}
}

// WithWriter replaces the clipboard backend
func (c *Copier) WithWriter(write WriteFunc) *Copier {
	c.write = write
	return c
}

// WithDuration changes how long the toast is shown
func (c *Copier) WithDuration(d time.Duration) *Copier {
	c.duration = d
	return c
}

func systemWrite(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}

// Copy writes text to the clipboard, then shows the toast until it expires
// or ctx is done. A failed write is logged and returned as a ClipboardError
// without showing the toast.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if err := c.write(text); err != nil {
		c.logger.WithError(err).Warn("Failed to copy to clipboard")
		return &errors.ClipboardError{Err: err}
	}

	if _, err := fmt.Fprint(c.out, toastStyle.Render(c.message)); err != nil {
		return fmt.Errorf("writing toast: %w", err)
	}

	timer := time.NewTimer(c.duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}

	_, err := fmt.Fprint(c.out, clearLine)
	return err
}
