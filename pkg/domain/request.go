package domain

// RequestKind tags the variant carried by a Request.
type RequestKind string

const (
	RequestWrite         RequestKind = "write"
	RequestClearRange    RequestKind = "clear_range"
	RequestClearAll      RequestKind = "clear_all"
	RequestClearLastLine RequestKind = "clear_last_line"
)

// Request is a single unit of work for the animator.
// It is immutable once queued and consumed exactly once by the run loop.
type Request struct {
	// ID is assigned by the animator on submission.
	ID uint64

	Kind RequestKind

	// Message is the exact text appended by a Write, suffix included.
	Message string

	// Start and Last bound a ClearRange (Start >= Last, both inclusive).
	Start int
	Last  int

	// OnComplete runs after RunCompleted for this request. Optional.
	OnComplete func()
}

// NewWrite creates a request that appends message character by character.
func NewWrite(message string, onComplete func()) Request {
	return Request{Kind: RequestWrite, Message: message, OnComplete: onComplete}
}

// NewClearRange creates a request that removes indices start down to last.
func NewClearRange(start, last int) Request {
	return Request{Kind: RequestClearRange, Start: start, Last: last}
}

// NewClearAll creates a request that removes everything after the prompt.
// The range is resolved when the run starts.
func NewClearAll() Request {
	return Request{Kind: RequestClearAll}
}

// NewClearLastLine creates a request that removes the most recent line.
// The range is resolved when the run starts.
func NewClearLastLine() Request {
	return Request{Kind: RequestClearLastLine}
}
