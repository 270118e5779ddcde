package textbuffer

import "strings"

// LastLineRange returns the inclusive index range [last, start] (start >= last)
// that removes the most recent line, and false when there is nothing to clear.
//
// When the buffer ends with one of the continuations, the line removed is the
// one that continuation terminates, together with the continuation itself, so a
// write followed by a clear of its line restores the previous content.
// Otherwise everything from the last line break onwards is removed.
// A line break inside the prompt never counts.
func (b *Buffer) LastLineRange(continuations ...string) (start, last int, ok bool) {
	p := len(b.prompt)
	n := len(b.content)
	if n <= p {
		return 0, 0, false
	}

	lastBreak := b.LastLineBreakIndex()
	if lastBreak == NoLineBreak || lastBreak < p {
		return 0, 0, false
	}

	tail := string(b.content[lastBreak:])
	terminated := false
	for _, c := range continuations {
		if c != "" && tail == c {
			terminated = true
			break
		}
	}
	if !terminated {
		return n - 1, lastBreak, true
	}

	lineStart := p
	if prev := b.lastBreakBefore(lastBreak); prev != NoLineBreak && prev >= p {
		lineStart = prev + b.continuationLen(prev, continuations)
	}
	return n - 1, lineStart, true
}

// continuationLen returns the length of the continuation that begins at the
// line break at index, or 1 when only the newline matches.
func (b *Buffer) continuationLen(index int, continuations []string) int {
	rest := string(b.content[index:])
	best := 1
	for _, c := range continuations {
		if strings.HasPrefix(rest, c) && len([]rune(c)) > best {
			best = len([]rune(c))
		}
	}
	return best
}
