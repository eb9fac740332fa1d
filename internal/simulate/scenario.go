// Package simulate runs scripted toast scenarios on a virtual clock and
// records what a screen would have shown.
package simulate

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/jmylchreest/toaststack/internal/model"
)

// Action is what a scenario step does.
type Action string

const (
	ActionShow       Action = "show"        // create the named toast and show it
	ActionHide       Action = "hide"        // hide the named toast
	ActionHover      Action = "hover"       // pointer enters the named toast
	ActionLeave      Action = "leave"       // pointer leaves the named toast
	ActionReset      Action = "reset"       // reset the registry
	ActionPosition   Action = "position"    // Value is a stack position
	ActionMaxVisible Action = "max_visible" // Value is the new capacity
	ActionSpacing    Action = "spacing"     // Value is the new gap in pixels
)

// Step is one scripted action at a point in virtual time.
type Step struct {
	At     int    `json:"at" yaml:"at"` // ms from the start
	Action Action `json:"action" yaml:"action"`
	Toast  string `json:"toast,omitempty" yaml:"toast,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`

	// Show only
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Preset   string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Duration *int   `json:"duration,omitempty" yaml:"duration,omitempty"` // ms, nil keeps the style default
}

// Screen is the size of the simulated display.
type Screen struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Scenario is a named script of steps.
type Scenario struct {
	Name   string `json:"name" yaml:"name"`
	Screen Screen `json:"screen" yaml:"screen"`
	// Sample is the interval in ms at which frames are captured between
	// steps. 0 uses DefaultSample.
	Sample int `json:"sample,omitempty" yaml:"sample,omitempty"`
	// Until stops the run at this time. 0 runs until no timers are pending.
	Until int    `json:"until,omitempty" yaml:"until,omitempty"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Validate checks the scenario and fills in the default screen size.
func (s *Scenario) Validate() error {
	if s.Screen.Width == 0 && s.Screen.Height == 0 {
		s.Screen = Screen{Width: 1920, Height: 1080}
	}
	if s.Screen.Width <= 0 || s.Screen.Height <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", s.Screen.Width, s.Screen.Height)
	}
	if s.Sample < 0 || s.Until < 0 {
		return fmt.Errorf("sample and until must not be negative")
	}

	shown := make(map[string]bool)
	for i, st := range s.Steps {
		if st.At < 0 {
			return &StepError{Index: i, Step: st, Reason: "negative time"}
		}
		switch st.Action {
		case ActionShow:
			if st.Toast == "" {
				return &StepError{Index: i, Step: st, Reason: "missing toast name"}
			}
			if shown[st.Toast] {
				return &StepError{Index: i, Step: st, Reason: "toast shown twice"}
			}
			shown[st.Toast] = true
			if st.Preset != "" {
				if _, err := model.ParsePreset(st.Preset); err != nil {
					return &StepError{Index: i, Step: st, Reason: "invalid preset", Err: err}
				}
			}
			if st.Duration != nil && *st.Duration < 0 {
				return &StepError{Index: i, Step: st, Reason: "negative duration"}
			}
		case ActionHide, ActionHover, ActionLeave:
			if !shown[st.Toast] {
				return &StepError{Index: i, Step: st, Reason: "unknown toast"}
			}
		case ActionReset:
		case ActionPosition:
			if _, err := model.ParsePosition(st.Value); err != nil {
				return &StepError{Index: i, Step: st, Reason: "invalid position", Err: err}
			}
		case ActionMaxVisible, ActionSpacing:
			if n, err := strconv.Atoi(st.Value); err != nil || n < 0 {
				return &StepError{Index: i, Step: st, Reason: "value must be a non-negative integer", Err: err}
			}
		default:
			return &StepError{Index: i, Step: st, Reason: "unknown action"}
		}
	}
	return nil
}

// ordered returns the steps sorted by time, keeping file order for ties.
func (s *Scenario) ordered() []Step {
	steps := slices.Clone(s.Steps)
	slices.SortStableFunc(steps, func(a, b Step) int { return a.At - b.At })
	return steps
}

// StepError reports an invalid scenario step.
type StepError struct {
	Index  int
	Step   Step
	Reason string
	Err    error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("step %d (%s at %dms): %s", e.Index+1, e.Step.Action, e.Step.At, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Demo is the scenario used when none is supplied: four toasts against a
// capacity of three, a hover and an early dismissal.
func Demo() *Scenario {
	d := func(ms int) *int { return &ms }
	return &Scenario{
		Name:   "demo",
		Screen: Screen{Width: 1920, Height: 1080},
		Steps: []Step{
			{At: 0, Action: ActionShow, Toast: "saved", Title: "Saved", Text: "Document saved to disk", Preset: "success", Duration: d(3000)},
			{At: 300, Action: ActionShow, Toast: "disk", Title: "Low disk space", Text: "Less than 1 GB left on /home", Preset: "warning", Duration: d(4000)},
			{At: 600, Action: ActionShow, Toast: "sync", Title: "Sync failed", Text: "Could not reach the server", Preset: "error-dark", Duration: d(0)},
			{At: 900, Action: ActionShow, Toast: "update", Title: "Update available", Text: "Version 2.0 is ready to install", Preset: "information"},
			{At: 1500, Action: ActionHover, Toast: "disk"},
			{At: 2500, Action: ActionLeave, Toast: "disk"},
			{At: 5000, Action: ActionHide, Toast: "sync"},
		},
	}
}
