package tui

import (
	"io"
	"sync/atomic"

	"github.com/muesli/termenv"
)

// Indicator is an audio cue sink for hosts without sound. It shows the
// "hacking" state in the terminal window title instead.
type Indicator struct {
	out       *termenv.Output
	idleTitle string
	busyTitle string
	started   atomic.Int64
	completed atomic.Int64
}

// NewIndicator writes title changes to w.
func NewIndicator(w io.Writer, idleTitle, busyTitle string) *Indicator {
	return &Indicator{
		out:       termenv.NewOutput(w),
		idleTitle: idleTitle,
		busyTitle: busyTitle,
	}
}

func (i *Indicator) OnRunStarted() {
	i.started.Add(1)
	i.out.SetWindowTitle(i.busyTitle)
}

func (i *Indicator) OnRunCompleted() {
	i.completed.Add(1)
	i.out.SetWindowTitle(i.idleTitle)
}

// Cues returns how many start and completion cues have been received.
func (i *Indicator) Cues() (started, completed int64) {
	return i.started.Load(), i.completed.Load()
}
