package typing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
)

// Target identifies a text slot of the terminal: a paragraph index or the command line
type Target int

// CommandTarget is the prompt line the loop phase types into
const CommandTarget Target = -1

// Paragraph returns the target of the i-th paragraph
func Paragraph(i int) Target {
	return Target(i)
}

func (t Target) String() string {
	if t == CommandTarget {
		return "command"
	}
	return strconv.Itoa(int(t))
}

// MarshalJSON encodes the target as the slot name used by the page script
func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Display is the surface the scheduler types into
type Display interface {
	Text(target Target) string
	Clear(target Target) error
	Append(target Target, text string) error
}

// Frame operations
const (
	OpClear  = "clear"
	OpAppend = "append"
)

// Frame describes one mutation of a Buffer
type Frame struct {
	Op     string `json:"op"`
	Target Target `json:"target"`
	Text   string `json:"text,omitempty"`
}

// Buffer is an in-memory Display. Every mutation is reported to the observer,
// and an observer error is returned to the scheduler.
type Buffer struct {
	mu         sync.Mutex
	paragraphs []string
	command    string
	observer   func(Frame) error
}

// NewBuffer creates a buffer holding the given paragraph texts
func NewBuffer(paragraphs []string, observer func(Frame) error) *Buffer {
	texts := make([]string, len(paragraphs))
	copy(texts, paragraphs)
	return &Buffer{
		paragraphs: texts,
		observer:   observer,
	}
}

// Text returns the visible text of target
func (b *Buffer) Text(target Target) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if target == CommandTarget {
		return b.command
	}
	if int(target) < 0 || int(target) >= len(b.paragraphs) {
		return ""
	}
	return b.paragraphs[target]
}

// Clear empties target
func (b *Buffer) Clear(target Target) error {
	if err := b.set(target, func(string) string { return "" }); err != nil {
		return err
	}
	return b.notify(Frame{Op: OpClear, Target: target})
}

// Append adds text to the end of target
func (b *Buffer) Append(target Target, text string) error {
	if err := b.set(target, func(s string) string { return s + text }); err != nil {
		return err
	}
	return b.notify(Frame{Op: OpAppend, Target: target, Text: text})
}

func (b *Buffer) set(target Target, update func(string) string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if target == CommandTarget {
		b.command = update(b.command)
		return nil
	}
	if int(target) < 0 || int(target) >= len(b.paragraphs) {
		return fmt.Errorf("unknown display target %s", target)
	}
	b.paragraphs[target] = update(b.paragraphs[target])
	return nil
}

func (b *Buffer) notify(frame Frame) error {
	if b.observer == nil {
		return nil
	}
	return b.observer(frame)
}
