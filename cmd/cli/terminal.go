package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-portfolio/internal/config"
	"github.com/kurihiro0119/github-portfolio/internal/logging"
	"github.com/kurihiro0119/github-portfolio/internal/typing"
)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))

// terminalPrinter renders typing frames on a real terminal. Paragraphs are
// printed one per line; the command line is redrawn in place.
type terminalPrinter struct {
	out       io.Writer
	wroteLine bool
	onPrompt  bool
}

func (t *terminalPrinter) frame(f typing.Frame) error {
	var err error
	switch {
	case f.Target == typing.CommandTarget && f.Op == typing.OpClear:
		if !t.onPrompt && t.wroteLine {
			_, err = fmt.Fprintln(t.out)
		}
		if err == nil {
			_, err = fmt.Fprint(t.out, "\r\033[K"+promptStyle.Render("$")+" ")
		}
		t.onPrompt = true
	case f.Op == typing.OpClear:
		if t.wroteLine {
			_, err = fmt.Fprintln(t.out)
		}
		t.wroteLine = true
	default:
		_, err = fmt.Fprint(t.out, f.Text)
		t.wroteLine = true
	}
	return err
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	printer := &terminalPrinter{out: os.Stdout}
	buf := typing.NewBuffer(content.Paragraphs, printer.frame)

	scheduler, err := typing.NewScheduler(buf, len(content.Paragraphs), content.Commands, typing.DefaultTimings(), logger)
	if err != nil {
		return err
	}

	err = scheduler.Run(cmd.Context())
	fmt.Println()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
