// Package textbuffer holds the authoritative console text.
//
// A Buffer is not safe for concurrent use; the animator serializes access.
package textbuffer

import "strings"

// NoLineBreak is returned by LastLineBreakIndex when the buffer holds no newline.
const NoLineBreak = -1

// Buffer is a rune-indexed text that always starts from a fixed prompt after a clear.
type Buffer struct {
	prompt  []rune
	content []rune
}

// New creates a buffer whose content is the prompt.
func New(prompt string) *Buffer {
	b := &Buffer{prompt: []rune(prompt)}
	b.SetToDefault()
	return b
}

// Append concatenates text to the end of the buffer.
func (b *Buffer) Append(text string) {
	b.content = append(b.content, []rune(text)...)
}

// AppendRune adds one character and returns the index it landed at.
func (b *Buffer) AppendRune(r rune) int {
	b.content = append(b.content, r)
	return len(b.content) - 1
}

// RemoveAt deletes exactly one character.
// Out-of-range indices leave the buffer untouched and report false.
func (b *Buffer) RemoveAt(index int) (rune, bool) {
	if index < 0 || index >= len(b.content) {
		return 0, false
	}
	r := b.content[index]
	b.content = append(b.content[:index], b.content[index+1:]...)
	return r, true
}

// RuneAt returns the character at index.
func (b *Buffer) RuneAt(index int) (rune, bool) {
	if index < 0 || index >= len(b.content) {
		return 0, false
	}
	return b.content[index], true
}

// SetToDefault resets the content to the prompt.
func (b *Buffer) SetToDefault() {
	b.content = append(b.content[:0], b.prompt...)
}

// Length is the number of characters, prompt included.
func (b *Buffer) Length() int {
	return len(b.content)
}

// PromptLength is the number of characters in the prompt.
func (b *Buffer) PromptLength() int {
	return len(b.prompt)
}

// Prompt returns the prompt literal.
func (b *Buffer) Prompt() string {
	return string(b.prompt)
}

// LastLineBreakIndex returns the index of the final newline, or NoLineBreak.
func (b *Buffer) LastLineBreakIndex() int {
	return b.lastBreakBefore(len(b.content))
}

func (b *Buffer) lastBreakBefore(end int) int {
	for i := end - 1; i >= 0; i-- {
		if b.content[i] == '\n' {
			return i
		}
	}
	return NoLineBreak
}

// HasSuffix reports whether the content ends with s.
func (b *Buffer) HasSuffix(s string) bool {
	return strings.HasSuffix(b.String(), s)
}

func (b *Buffer) String() string {
	return string(b.content)
}
