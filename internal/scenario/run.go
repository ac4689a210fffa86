package scenario

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/karrick/rpncalc"
	"github.com/karrick/rpncalc/internal/session"
	"github.com/karrick/rpncalc/keymap"
)

// StepResult records the state after one step.
type StepResult struct {
	Label      string
	Stack      []string
	Error      string // ErrorKind name, empty on success
	Mismatches []string
}

// Result is the outcome of running a Scenario.
type Result struct {
	Name  string
	Steps []StepResult
}

// Passed returns true when no step had a mismatch.
func (r *Result) Passed() bool {
	return r.Failures() == 0
}

// Failures returns the number of mismatches over all steps.
func (r *Result) Failures() int {
	var n int
	for _, step := range r.Steps {
		n += len(step.Mismatches)
	}
	return n
}

// Transcript renders the result as deterministic text, one line per step
// followed by its mismatches.
func (r *Result) Transcript() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "%3d  %-12s %s", i+1, step.Label, formatList(step.Stack))
		if step.Error != "" {
			fmt.Fprintf(&b, " !%s", step.Error)
		}
		b.WriteByte('\n')
		for _, m := range step.Mismatches {
			fmt.Fprintf(&b, "     mismatch: %s\n", m)
		}
	}
	if r.Passed() {
		b.WriteString("PASS\n")
	} else {
		fmt.Fprintf(&b, "FAIL: %d mismatches\n", r.Failures())
	}
	return b.Bytes()
}

// Run replays sc in a new session of m, closing the session afterwards.
// A failed expectation is recorded in the Result, not returned as an
// error; the error reports a session that could not be created.
func Run(m *session.Manager, sc *Scenario) (*Result, error) {
	mode := sc.Mode
	if mode == "" {
		mode = keymap.Standard
	}
	s, err := m.New(mode)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", sc.Name)
	}
	defer func() {
		if err := m.Close(s.ID()); err != nil {
			slog.Warn("cannot close scenario session", "scenario", sc.Name, "error", err)
		}
	}()

	slog.Info("scenario starting", "scenario", sc.Name, "session", s.ID(), "steps", len(sc.Steps))

	calc := s.Calculator()
	result := &Result{Name: sc.Name}
	for _, step := range sc.Steps {
		sr := StepResult{Label: step.Label()}
		kind := rpncalc.NoError

		switch step.Action {
		case ActionClear:
			calc.ClearStack()
		case ActionClearHistory:
			calc.ClearHistory()
		default:
			if r := s.Process(step.Input); r.Err != nil {
				kind = r.Kind()
				sr.Error = kind.String()
				if kind == rpncalc.NoError {
					sr.Error = r.Err.Error()
				}
			}
		}

		sr.Stack = stackStrings(calc.Stack())
		sr.Mismatches = check(step.Expect, sr.Stack, calc.History(), kind)
		result.Steps = append(result.Steps, sr)
	}

	slog.Info("scenario finished", "scenario", sc.Name, "passed", result.Passed(), "failures", result.Failures())
	return result, nil
}
