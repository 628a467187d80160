// Package typing implements the terminal typing animation: a reveal phase that
// types static paragraphs once, followed by an endless loop of fake commands.
package typing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Phase is the scheduler's current stage
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReveal
	PhaseLoop
)

func (p Phase) String() string {
	switch p {
	case PhaseReveal:
		return "reveal"
	case PhaseLoop:
		return "loop"
	default:
		return "idle"
	}
}

// Timings are the fixed delays of the animation
type Timings struct {
	StartDelay     time.Duration
	CharDelay      time.Duration
	ParagraphPause time.Duration
	LoopPause      time.Duration
	CommandDelay   time.Duration
	Dwell          time.Duration
}

// DefaultTimings returns the delays used by the portfolio page
func DefaultTimings() Timings {
	return Timings{
		StartDelay:     800 * time.Millisecond,
		CharDelay:      24 * time.Millisecond,
		ParagraphPause: 400 * time.Millisecond,
		LoopPause:      600 * time.Millisecond,
		CommandDelay:   50 * time.Millisecond,
		Dwell:          2000 * time.Millisecond,
	}
}

// DefaultCommands are the fake shell commands cycled by the loop phase
var DefaultCommands = []string{
	"git status",
	"docker ps",
	"kubectl get pods",
	"npm run build",
	"ssh root@server.dev",
	"gh repo list",
	"top -b -n1 | head -5",
}

// ErrNoCommands is returned when the loop phase would have nothing to type
var ErrNoCommands = errors.New("typing: at least one command is required")

// Scheduler drives a Display through the reveal and loop phases.
// Step advances the state machine by one action; Run calls Step on a timer.
type Scheduler struct {
	display    Display
	paragraphs int
	commands   [][]rune
	timings    Timings
	logger     logrus.FieldLogger

	mu        sync.Mutex
	phase     Phase
	paragraph int
	command   int
	pos       int
	begun     bool
	text      []rune
	memo      map[int][]rune

	stopOnce sync.Once
	stop     chan struct{}
}

// NewScheduler creates a scheduler revealing the first paragraphs targets of display
func NewScheduler(display Display, paragraphs int, commands []string, timings Timings, logger logrus.FieldLogger) (*Scheduler, error) {
	if len(commands) == 0 {
		return nil, ErrNoCommands
	}
	runes := make([][]rune, len(commands))
	for i, cmd := range commands {
		runes[i] = []rune(cmd)
	}
	return &Scheduler{
		display:    display,
		paragraphs: paragraphs,
		commands:   runes,
		timings:    timings,
		logger:     logger,
		memo:       make(map[int][]rune),
		stop:       make(chan struct{}),
	}, nil
}

// Phase returns the current phase
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CommandIndex returns the index of the command being typed or about to be typed
func (s *Scheduler) CommandIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.command
}

// Step performs exactly one action and returns the delay before the next one
func (s *Scheduler) Step() (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseIdle:
		s.phase = PhaseReveal
		s.paragraph = 0
		s.begun = false
		return s.timings.StartDelay, nil
	case PhaseReveal:
		return s.stepReveal()
	default:
		return s.stepLoop()
	}
}

func (s *Scheduler) stepReveal() (time.Duration, error) {
	if s.paragraph >= s.paragraphs {
		s.phase = PhaseLoop
		s.command = 0
		s.begun = false
		s.logger.Debug("typing: reveal finished, entering command loop")
		return s.timings.LoopPause, nil
	}

	target := Paragraph(s.paragraph)
	if !s.begun {
		s.text = s.paragraphText(s.paragraph)
		if len(s.text) == 0 {
			s.paragraph++
			return 0, nil
		}
		if err := s.display.Clear(target); err != nil {
			return 0, err
		}
		s.begun = true
		s.pos = 0
		return 0, nil
	}

	if err := s.display.Append(target, string(s.text[s.pos])); err != nil {
		return 0, err
	}
	s.pos++
	if s.pos < len(s.text) {
		return s.timings.CharDelay, nil
	}
	s.paragraph++
	s.begun = false
	return s.timings.ParagraphPause, nil
}

// paragraphText reads a paragraph the first time it is visited and reuses
// that text afterwards, whatever the display currently shows.
func (s *Scheduler) paragraphText(i int) []rune {
	if text, ok := s.memo[i]; ok {
		return text
	}
	text := []rune(strings.TrimSpace(s.display.Text(Paragraph(i))))
	s.memo[i] = text
	return text
}

func (s *Scheduler) stepLoop() (time.Duration, error) {
	cmd := s.commands[s.command]
	if !s.begun {
		if err := s.display.Clear(CommandTarget); err != nil {
			return 0, err
		}
		s.begun = true
		s.pos = 0
		if len(cmd) == 0 {
			s.nextCommand()
			return s.timings.Dwell, nil
		}
		return 0, nil
	}

	if err := s.display.Append(CommandTarget, string(cmd[s.pos])); err != nil {
		return 0, err
	}
	s.pos++
	if s.pos < len(cmd) {
		return s.timings.CommandDelay, nil
	}
	s.nextCommand()
	return s.timings.Dwell, nil
}

func (s *Scheduler) nextCommand() {
	s.command = (s.command + 1) % len(s.commands)
	s.begun = false
}

// Run steps the scheduler until ctx is cancelled, Stop is called or the
// display fails. Cancellation is checked before every reschedule.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		default:
		}

		delay, err := s.Step()
		if err != nil {
			s.logger.WithError(err).Warn("typing: display update failed, stopping")
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-s.stop:
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// Stop halts Run. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
