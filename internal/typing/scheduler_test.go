package typing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-portfolio/internal/logging"
)

func testLogger() logrus.FieldLogger {
	return logging.Discard()
}

// stepUntil advances s until done reports true, failing after max steps
func stepUntil(t *testing.T, s *Scheduler, max int, done func(time.Duration) bool) {
	t.Helper()
	for i := 0; i < max; i++ {
		delay, err := s.Step()
		require.NoError(t, err)
		if done(delay) {
			return
		}
	}
	t.Fatalf("condition not reached after %d steps", max)
}

func TestRevealThenLoop(t *testing.T) {
	buf := NewBuffer([]string{"hi", "ok"}, nil)
	timings := DefaultTimings()
	s, err := NewScheduler(buf, 2, DefaultCommands, timings, testLogger())
	require.NoError(t, err)

	assert.Equal(t, PhaseIdle, s.Phase())

	var delays []time.Duration
	stepUntil(t, s, 20, func(d time.Duration) bool {
		delays = append(delays, d)
		return s.Phase() == PhaseLoop
	})

	assert.Equal(t, []time.Duration{
		timings.StartDelay,
		0, timings.CharDelay, timings.ParagraphPause,
		0, timings.CharDelay, timings.ParagraphPause,
		timings.LoopPause,
	}, delays)
	assert.Equal(t, "hi", buf.Text(Paragraph(0)))
	assert.Equal(t, "ok", buf.Text(Paragraph(1)))
	assert.Equal(t, 0, s.CommandIndex())

	// The loop shows every command once before returning to the first
	var shown []string
	stepUntil(t, s, 1000, func(d time.Duration) bool {
		if d == timings.Dwell {
			shown = append(shown, buf.Text(CommandTarget))
		}
		return len(shown) == len(DefaultCommands)+1
	})

	want := append(append([]string{}, DefaultCommands...), DefaultCommands[0])
	assert.Equal(t, want, shown)
	assert.Equal(t, PhaseLoop, s.Phase())
}

func TestRevealClearsBeforeTyping(t *testing.T) {
	var mu sync.Mutex
	var frames []Frame
	buf := NewBuffer([]string{"ab"}, func(f Frame) error {
		mu.Lock()
		defer mu.Unlock()
		frames = append(frames, f)
		return nil
	})
	s, err := NewScheduler(buf, 1, []string{"x"}, DefaultTimings(), testLogger())
	require.NoError(t, err)

	stepUntil(t, s, 10, func(time.Duration) bool { return s.Phase() == PhaseLoop })

	assert.Equal(t, []Frame{
		{Op: OpClear, Target: 0},
		{Op: OpAppend, Target: 0, Text: "a"},
		{Op: OpAppend, Target: 0, Text: "b"},
	}, frames)
}

func TestRevealUsesMemoizedText(t *testing.T) {
	buf := NewBuffer([]string{"  héllo  "}, nil)
	s, err := NewScheduler(buf, 1, []string{"x"}, DefaultTimings(), testLogger())
	require.NoError(t, err)

	_, err = s.Step() // start
	require.NoError(t, err)
	_, err = s.Step() // memoize and clear
	require.NoError(t, err)

	// Mutating the visible text mid-reveal does not change what gets typed
	require.NoError(t, buf.Append(Paragraph(0), "zzz"))
	require.NoError(t, buf.Clear(Paragraph(0)))

	stepUntil(t, s, 20, func(time.Duration) bool { return s.Phase() == PhaseLoop })
	assert.Equal(t, "héllo", buf.Text(Paragraph(0)))
}

func TestEmptyParagraphSkipped(t *testing.T) {
	buf := NewBuffer([]string{"", "ok"}, nil)
	s, err := NewScheduler(buf, 2, []string{"x"}, DefaultTimings(), testLogger())
	require.NoError(t, err)

	_, err = s.Step()
	require.NoError(t, err)
	delay, err := s.Step()
	require.NoError(t, err)
	assert.Zero(t, delay)

	stepUntil(t, s, 10, func(time.Duration) bool { return s.Phase() == PhaseLoop })
	assert.Equal(t, "ok", buf.Text(Paragraph(1)))
}

func TestNewSchedulerRequiresCommands(t *testing.T) {
	_, err := NewScheduler(NewBuffer(nil, nil), 0, nil, DefaultTimings(), testLogger())
	assert.ErrorIs(t, err, ErrNoCommands)
}

func TestDisplayErrorStopsStep(t *testing.T) {
	boom := errors.New("connection closed")
	buf := NewBuffer([]string{"hi"}, func(Frame) error { return boom })
	s, err := NewScheduler(buf, 1, []string{"x"}, Timings{}, testLogger())
	require.NoError(t, err)

	err = s.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func fastTimings() Timings {
	return Timings{
		StartDelay:     time.Millisecond,
		CharDelay:      time.Millisecond,
		ParagraphPause: time.Millisecond,
		LoopPause:      time.Millisecond,
		CommandDelay:   time.Millisecond,
		Dwell:          time.Millisecond,
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, err := NewScheduler(NewBuffer([]string{"hello"}, nil), 1, DefaultCommands, fastTimings(), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunStopsOnStop(t *testing.T) {
	s, err := NewScheduler(NewBuffer(nil, nil), 0, DefaultCommands, fastTimings(), testLogger())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestFrameJSON(t *testing.T) {
	data, err := json.Marshal(Frame{Op: OpAppend, Target: Paragraph(2), Text: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"append","target":"2","text":"a"}`, string(data))

	data, err = json.Marshal(Frame{Op: OpClear, Target: CommandTarget})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"clear","target":"command"}`, string(data))
}

func TestBufferUnknownTarget(t *testing.T) {
	buf := NewBuffer([]string{"a"}, nil)
	assert.Error(t, buf.Append(Paragraph(3), "x"))
	assert.Equal(t, "", buf.Text(Paragraph(3)))
}
