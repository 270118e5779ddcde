// Package script plays scripted console sequences such as an in-game tutorial:
// text reveals, clears, pauses, and cues handed back to the game.
package script

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidScript is returned when a script cannot be parsed or a step is malformed.
	ErrInvalidScript = errors.New("invalid script")
	// ErrUnknownCue is returned when a step references a cue the player does not know.
	ErrUnknownCue = errors.New("unknown cue")
)

// Script is a named, ordered list of steps.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// StepKind names what a step does.
type StepKind string

const (
	StepWrite         StepKind = "write"
	StepWriteLine     StepKind = "write_line"
	StepWriteRaw      StepKind = "write_raw"
	StepClear         StepKind = "clear"
	StepClearLastLine StepKind = "clear_last_line"
	StepWait          StepKind = "wait"
	StepWaitVariables StepKind = "wait_variables"
	StepVariable      StepKind = "variable"
	StepCue           StepKind = "cue"
)

// Step is one entry of a script. Exactly one field must be set.
type Step struct {
	Write         *string       `yaml:"write,omitempty" json:"write,omitempty"`
	WriteLine     *string       `yaml:"write_line,omitempty" json:"write_line,omitempty"`
	WriteRaw      *string       `yaml:"write_raw,omitempty" json:"write_raw,omitempty"`
	Clear         bool          `yaml:"clear,omitempty" json:"clear,omitempty"`
	ClearLastLine bool          `yaml:"clear_last_line,omitempty" json:"clear_last_line,omitempty"`
	Wait          time.Duration `yaml:"wait,omitempty" json:"wait,omitempty"`
	WaitVariables int           `yaml:"wait_variables,omitempty" json:"wait_variables,omitempty"`
	Variable      *VariableStep `yaml:"variable,omitempty" json:"variable,omitempty"`
	Cue           string        `yaml:"cue,omitempty" json:"cue,omitempty"`
}

// VariableStep shows a value in an inspector widget.
type VariableStep struct {
	Name   string   `yaml:"name" json:"name"`
	Value  any      `yaml:"value" json:"value"`
	Hidden []string `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Kind reports which field is set. It fails unless exactly one is.
func (s Step) Kind() (StepKind, error) {
	var kinds []StepKind
	if s.Write != nil {
		kinds = append(kinds, StepWrite)
	}
	if s.WriteLine != nil {
		kinds = append(kinds, StepWriteLine)
	}
	if s.WriteRaw != nil {
		kinds = append(kinds, StepWriteRaw)
	}
	if s.Clear {
		kinds = append(kinds, StepClear)
	}
	if s.ClearLastLine {
		kinds = append(kinds, StepClearLastLine)
	}
	if s.Wait != 0 {
		kinds = append(kinds, StepWait)
	}
	if s.WaitVariables != 0 {
		kinds = append(kinds, StepWaitVariables)
	}
	if s.Variable != nil {
		kinds = append(kinds, StepVariable)
	}
	if s.Cue != "" {
		kinds = append(kinds, StepCue)
	}

	switch len(kinds) {
	case 0:
		return "", fmt.Errorf("%w: empty step", ErrInvalidScript)
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("%w: step sets %v", ErrInvalidScript, kinds)
	}
}

// Validate checks every step.
func (s *Script) Validate() error {
	var errs []error
	for i, step := range s.Steps {
		kind, err := step.Kind()
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, err))
			continue
		}
		switch {
		case kind == StepWait && step.Wait < 0:
			errs = append(errs, fmt.Errorf("step %d: %w: negative wait", i, ErrInvalidScript))
		case kind == StepWaitVariables && step.WaitVariables < 0:
			errs = append(errs, fmt.Errorf("step %d: %w: negative variable count", i, ErrInvalidScript))
		case kind == StepVariable && step.Variable.Name == "":
			errs = append(errs, fmt.Errorf("step %d: %w: variable without name", i, ErrInvalidScript))
		}
	}
	return errors.Join(errs...)
}

// Cues lists the distinct cue names referenced by the script, in order of first use.
func (s *Script) Cues() []string {
	seen := make(map[string]bool)
	var names []string
	for _, step := range s.Steps {
		if step.Cue != "" && !seen[step.Cue] {
			seen[step.Cue] = true
			names = append(names, step.Cue)
		}
	}
	return names
}

// Parse decodes a YAML (or JSON) script and validates it.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return s, nil
}
