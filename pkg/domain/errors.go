package domain

import "errors"

// ErrDuplicateInstance is returned when a second console is constructed for a key that is already held.
var ErrDuplicateInstance = errors.New("more than one console instance detected")

// ErrMissingCollaborator is returned when a required dependency was not wired at construction.
var ErrMissingCollaborator = errors.New("missing required collaborator")

// ErrClosed is returned when work is submitted to a console or animator that has been closed.
var ErrClosed = errors.New("console closed")

// ErrVariableNotFound is returned when a per-name operation targets an unknown variable.
var ErrVariableNotFound = errors.New("variable not found")

// ErrInvalidConfig is returned when configuration values cannot be honoured.
var ErrInvalidConfig = errors.New("invalid configuration")
