package tree

import (
	"errors"
	"fmt"
)

// ErrInvalidBuilderState marks calls that are not valid for the builder's
// current state. Such calls are rejected without touching the tree and the
// error is reported by Err and Build.
var ErrInvalidBuilderState = errors.New("invalid builder state")

// StateError describes a rejected builder call.
type StateError struct {
	Op    string
	State State
	Name  string
}

func (e *StateError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("tree builder: %s(%q) not allowed while %s", e.Op, e.Name, e.State)
	}
	return fmt.Sprintf("tree builder: %s not allowed while %s", e.Op, e.State)
}

// Unwrap lets errors.Is match ErrInvalidBuilderState.
func (e *StateError) Unwrap() error {
	return ErrInvalidBuilderState
}

// ErrInvalidOption marks option values the tree cannot represent, such as a
// section "open" flag that is not a boolean.
var ErrInvalidOption = errors.New("invalid option")

// OptionError describes an option rejected for the named field.
type OptionError struct {
	Op    string
	Name  string
	Key   string
	Value any
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("tree builder: %s(%q) option %q has unsupported value %v (%T)", e.Op, e.Name, e.Key, e.Value, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidOption.
func (e *OptionError) Unwrap() error {
	return ErrInvalidOption
}
