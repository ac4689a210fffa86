package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karrick/rpncalc/internal/scenario"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Transcript bool // print the per-step transcript of every scenario
}

// ScenarioResult holds the result of a single scenario.
type ScenarioResult struct {
	Name       string   `json:"name"`
	Path       string   `json:"path"`
	Pass       bool     `json:"pass"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// RunResult holds the overall result of the run command.
type RunResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// String renders one line per scenario and a summary line.
func (r RunResult) String() string {
	var b strings.Builder
	for _, sc := range r.Scenarios {
		status := "PASS"
		if !sc.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %s (%s)\n", status, sc.Name, sc.Path)
		for _, m := range sc.Mismatches {
			fmt.Fprintf(&b, "      %s\n", m)
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed, %d total", r.Passed, r.Failed, r.Total)
	return b.String()
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Replay scenario files",
		Long: `Replay scripted calculator sessions and check every expectation.

Each scenario runs in its own session, in the keymap mode it names.

Exit codes:
  0 - All scenarios passed
  1 - One or more expectations failed
  2 - Command error (unreadable or invalid scenario, unknown mode)

Examples:
  rpncalc run testdata/arithmetic.yaml
  rpncalc run --transcript scenarios/*.yaml
  rpncalc run --format json scenarios/*.yaml`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Transcript, "transcript", "t", false, "print the step transcript of each scenario")

	return cmd
}

func runScenarios(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	env, err := opts.prepare(cmd)
	if err != nil {
		return err
	}

	// Load everything first so a bad file fails before anything runs.
	scenarios := make([]*scenario.Scenario, len(paths))
	for i, path := range paths {
		if scenarios[i], err = scenario.Load(path); err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
	}

	var result RunResult
	for i, sc := range scenarios {
		r, err := scenario.Run(env.manager, sc)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to run scenario", err)
		}
		if opts.Transcript && env.formatter.Format == "text" {
			if _, err := env.formatter.Writer.Write(r.Transcript()); err != nil {
				return err
			}
		}

		sr := ScenarioResult{Name: sc.Name, Path: paths[i], Pass: r.Passed()}
		for j, step := range r.Steps {
			for _, m := range step.Mismatches {
				sr.Mismatches = append(sr.Mismatches, fmt.Sprintf("step %d (%s): %s", j+1, step.Label, m))
			}
		}
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Scenarios = append(result.Scenarios, sr)
	}
	result.Total = len(scenarios)

	slog.Debug("scenarios finished", "passed", result.Passed, "failed", result.Failed)
	if err := env.formatter.Success(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return ReportedExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total), nil)
	}
	return nil
}
