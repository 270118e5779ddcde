package domain

import "time"

// Prompt grammar. Every cleared buffer equals the prompt and every write ends
// with exactly one continuation.
const (
	// DefaultPrompt is the literal prefix that survives every clear.
	DefaultPrompt = ">\t"

	// LineContinuation terminates a Write: the next line is indented but carries no marker.
	LineContinuation = "\n\t"

	// PromptContinuation terminates a WriteLine: the next line shows the prompt marker.
	PromptContinuation = "\n>\t"
)

// Animation pacing defaults, in real time.
const (
	DefaultWriteDelay = 65 * time.Millisecond
	DefaultClearDelay = 23 * time.Millisecond
)

// DefaultVariableTemplate is the widget template spawned for inspector entries.
const DefaultVariableTemplate = "variable"

// DefaultInstanceKey identifies the console for the single-instance guard.
const DefaultInstanceKey = "console"

// DefaultSkipSet returns the characters that never pause the animation.
func DefaultSkipSet() []rune {
	return []rune{' ', '\n'}
}

// Continuations lists the trailing sequences a write may leave behind,
// longest first.
func Continuations() []string {
	return []string{PromptContinuation, LineContinuation}
}
