package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTrials is returned when a run or reduction has fewer than one
	// trial to work with.
	ErrNoTrials = errors.New("at least one trial is required")
	// ErrInvalidInput is returned when the input document is not valid JSON.
	ErrInvalidInput = errors.New("input is not valid json")
	// ErrClockSkew is returned when the clock reads a stop time before the
	// start time. It's a measurement bug, not a property of the parser.
	ErrClockSkew = errors.New("clock went backwards")
)

// IOError is returned when the input document can't be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read input %s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// OperationError is returned when a parser fails on the input.
type OperationError struct {
	Name  string
	Trial int
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %s: trial %d: %s", e.Name, e.Trial, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
