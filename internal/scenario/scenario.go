// Package scenario replays scripted calculator sessions and checks the
// stack, history and error reported after each step.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario shows"
//	mode: standard
//	steps:
//	  - input: "5"
//	  - input: "0"
//	  - input: "/"
//	    expect:
//	      stack: ["5", "0"]
//	      error: DivisionByZero
//	  - action: clear
//	    expect:
//	      stack: []
//
// A step carries either an input atom or an action (clear, clearhist).
// Stack values are compared in their full-precision text form, so Integer
// 3 is "3" and Float 3 is "3.0". An expect clause without error requires
// the step to succeed; omitting stack or history skips that comparison.
package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/karrick/rpncalc"
)

// Action names accepted in a step.
const (
	ActionClear        = "clear"
	ActionClearHistory = "clearhist"
)

// Scenario is one scripted session.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario shows.
	Description string `yaml:"description"`

	// Mode is the keymap mode of the session. Empty selects "standard".
	Mode string `yaml:"mode,omitempty"`

	// Steps run in order against one session.
	Steps []Step `yaml:"steps"`
}

// Step submits one atom or performs one action.
type Step struct {
	Input  string  `yaml:"input,omitempty"`
	Action string  `yaml:"action,omitempty"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Label returns the input of the step, or its action in angle brackets.
func (s Step) Label() string {
	if s.Action != "" {
		return "<" + s.Action + ">"
	}
	return s.Input
}

// Expect specifies the state after a step.
type Expect struct {
	// Stack lists the expected values, bottom first. Nil is unchecked.
	Stack []string `yaml:"stack,omitempty"`

	// History lists the expected history. Nil is unchecked.
	History []string `yaml:"history,omitempty"`

	// Error is the expected ErrorKind name. Empty requires success.
	Error string `yaml:"error,omitempty"`
}

// Load reads and parses a scenario YAML file. Unknown fields and missing
// required fields are errors.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}
	sc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return sc, nil
}

// Parse decodes and validates a scenario from r.
func Parse(r io.Reader) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	if err := validateScenario(&sc); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return &sc, nil
}

func validateScenario(sc *Scenario) error {
	if sc.Name == "" {
		return errors.New("name is required")
	}
	if strings.ContainsAny(sc.Name, `/\ `) {
		return errors.Errorf("name must not contain spaces or path separators: %q", sc.Name)
	}
	if len(sc.Steps) == 0 {
		return errors.New("steps list is required and must be non-empty")
	}
	for i, step := range sc.Steps {
		if err := validateStep(step); err != nil {
			return errors.Wrapf(err, "steps[%d]", i)
		}
	}
	return nil
}

func validateStep(step Step) error {
	switch {
	case step.Input == "" && step.Action == "":
		return errors.New("input or action is required")
	case step.Input != "" && step.Action != "":
		return errors.New("input and action are mutually exclusive")
	}
	switch step.Action {
	case "", ActionClear, ActionClearHistory:
	default:
		return errors.Errorf("unknown action %q", step.Action)
	}
	if step.Expect != nil && step.Expect.Error != "" {
		if _, ok := rpncalc.ParseErrorKind(step.Expect.Error); !ok {
			return errors.Errorf("unknown error kind %q", step.Expect.Error)
		}
	}
	return nil
}

// stackStrings renders a stack the way expectations are written.
func stackStrings(stack []rpncalc.Number) []string {
	out := make([]string, len(stack))
	for i, n := range stack {
		out[i] = n.String()
	}
	return out
}

func formatList(list []string) string {
	return "[" + strings.Join(list, " ") + "]"
}

func sameList(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return false
		}
	}
	return true
}

// check compares one step's outcome against its expectation.
func check(expect *Expect, stack []string, history []string, kind rpncalc.ErrorKind) []string {
	var mismatches []string
	if expect == nil {
		return nil
	}
	if expect.Stack != nil && !sameList(expect.Stack, stack) {
		mismatches = append(mismatches, fmt.Sprintf("stack: expected %s, actual %s", formatList(expect.Stack), formatList(stack)))
	}
	if expect.History != nil && !sameList(expect.History, history) {
		mismatches = append(mismatches, fmt.Sprintf("history: expected %s, actual %s", formatList(expect.History), formatList(history)))
	}
	wantKind := rpncalc.NoError
	if expect.Error != "" {
		wantKind, _ = rpncalc.ParseErrorKind(expect.Error)
	}
	if wantKind != kind {
		mismatches = append(mismatches, fmt.Sprintf("error: expected %s, actual %s", wantKind, kind))
	}
	return mismatches
}
