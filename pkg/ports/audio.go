package ports

// AudioCueSink receives fire-and-forget notifications around each run.
// Hosts use it to toggle a "hacking" animation or play a cue.
type AudioCueSink interface {
	OnRunStarted()
	OnRunCompleted()
}

// AudioCueFuncs adapts two plain functions to an AudioCueSink.
// Nil functions are ignored.
type AudioCueFuncs struct {
	Started   func()
	Completed func()
}

func (f AudioCueFuncs) OnRunStarted() {
	if f.Started != nil {
		f.Started()
	}
}

func (f AudioCueFuncs) OnRunCompleted() {
	if f.Completed != nil {
		f.Completed()
	}
}
