// Package input provides scenario sources for the simulator.
package input

import (
	"context"

	"github.com/jmylchreest/toaststack/internal/simulate"
)

// InputAdapter loads a scenario from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "stdin", "file", "demo").
	Name() string

	// Import reads and validates the scenario.
	Import(ctx context.Context) (*simulate.Scenario, error)
}

// NewAdapter creates an InputAdapter for source: "-" or "stdin" reads
// standard input, "" or "demo" uses the built-in demo, anything else is a
// file path.
func NewAdapter(source string) InputAdapter {
	switch source {
	case "", "demo":
		return DemoAdapter{}
	case "-", "stdin":
		return NewStdinAdapter()
	default:
		return NewFileAdapter(source)
	}
}

// DemoAdapter returns the built-in demo scenario.
type DemoAdapter struct{}

// Name returns the adapter identifier.
func (DemoAdapter) Name() string { return "demo" }

// Import returns simulate.Demo.
func (DemoAdapter) Import(context.Context) (*simulate.Scenario, error) {
	return simulate.Demo(), nil
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
