package domain

// RunState describes what the animator is doing.
type RunState string

const (
	StateIdle    RunState = "idle"    // No run is active
	StateRunning RunState = "running" // One stream is being drained
)
