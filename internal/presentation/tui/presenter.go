package tui

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/muesli/termenv"

	"github.com/aretw0/hackterm/pkg/domain"
)

// DefaultTextColor is the phosphor green used for console text.
const DefaultTextColor = "#22c55e"

// Presenter mirrors the console text onto a terminal, one character at a
// time, by listening to the per-character lifecycle hooks.
type Presenter struct {
	mu     sync.Mutex
	out    *termenv.Output
	color  termenv.Color
	mirror []rune
}

// NewPresenter writes to w using the color profile detected for it.
func NewPresenter(w io.Writer, opts ...termenv.OutputOption) *Presenter {
	out := termenv.NewOutput(w, opts...)
	return &Presenter{
		out:   out,
		color: out.Color(DefaultTextColor),
	}
}

// Start prints the initial console content, usually the prompt.
func (p *Presenter) Start(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mirror = []rune(text)
	p.print(text)
}

// Text returns what the presenter believes is on screen.
func (p *Presenter) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return string(p.mirror)
}

// Hooks returns the lifecycle hooks that drive the presenter.
func (p *Presenter) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCharacterWritten: func(ctx context.Context, e *domain.StepEvent) {
			p.written(e.Index, e.Char)
		},
		OnCharacterRemoved: func(ctx context.Context, e *domain.StepEvent) {
			p.removed(e.Index, e.Char)
		},
	}
}

func (p *Presenter) written(index int, r rune) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index > len(p.mirror) {
		index = len(p.mirror)
	}
	p.mirror = slices.Insert(p.mirror, index, r)
	p.print(string(r))
}

// removed redraws the line the cursor ends up on. Removing a newline moves
// the cursor back up to the previous line first.
func (p *Presenter) removed(index int, r rune) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.mirror) {
		p.mirror = slices.Delete(p.mirror, index, index+1)
	}

	p.out.ClearLine()
	if r == '\n' {
		p.out.CursorPrevLine(1)
		p.out.ClearLine()
	}
	p.out.WriteString("\r")
	p.print(p.lastLine())
}

func (p *Presenter) lastLine() string {
	for j := len(p.mirror) - 1; j >= 0; j-- {
		if p.mirror[j] == '\n' {
			return string(p.mirror[j+1:])
		}
	}
	return string(p.mirror)
}

func (p *Presenter) print(s string) {
	p.out.WriteString(p.out.String(s).Foreground(p.color).String())
}
