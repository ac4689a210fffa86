package cli

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EvalFailure is the error detail reported when an atom fails.
type EvalFailure struct {
	Atom  string    `json:"atom"`
	Index int       `json:"index"`
	Stack StackView `json:"stack"`
}

// String renders the failure for text output.
func (f EvalFailure) String() string {
	return f.Stack.String()
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <atom>...",
		Short: "Evaluate atoms and print the resulting stack",
		Long: `Process each atom in order in a new session and print the final stack.

Arguments containing whitespace are split into several atoms. Evaluation
stops at the first atom that fails; the stack at that point is printed
along with the error.

Flags must come before the first atom. A negative number such as -4 is
an atom, not a flag; "--" ends the flags explicitly.

Exit codes:
  0 - Every atom succeeded
  1 - An atom failed
  2 - Command error (bad config, keymap or mode)

Examples:
  rpncalc eval 5 3 +
  rpncalc eval "2 10 ^ 1 −"
  rpncalc eval --mode hyperbolic 1 sin
  rpncalc eval --format json 7 2 /
  rpncalc eval 5 -3 +
  rpncalc eval -- -4 √`,
		Args:               cobra.MinimumNArgs(1),
		SilenceUsage:       true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args, cmd)
		},
	}
	return cmd
}

// splitEvalArgs separates the leading flags from the atoms. Flag parsing
// is disabled for eval so that negative literals reach the calculator;
// cobra hands over every argument, including flags given before "eval".
func splitEvalArgs(fs *pflag.FlagSet, args []string) (flags, atoms []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return flags, args[i+1:]
		case isAtom(arg):
			return flags, args[i:]
		}
		flags = append(flags, arg)
		if takesValue(fs, arg) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, nil
}

// isAtom reports whether arg is calculator input rather than a flag: it
// does not start with '-', is the '-' operator itself, or is a negative
// literal.
func isAtom(arg string) bool {
	if !strings.HasPrefix(arg, "-") || arg == "-" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(arg[1:])
	return unicode.IsDigit(r) || r == '.'
}

// takesValue reports whether flag arg consumes the following argument.
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}
		f := fs.Lookup(name)
		return f != nil && f.NoOptDefVal == ""
	}
	// In a shorthand cluster such as -vp4 the value follows the first
	// shorthand that takes one.
	shorthands := arg[1:]
	for i := 0; i < len(shorthands); i++ {
		f := fs.ShorthandLookup(shorthands[i : i+1])
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			return i == len(shorthands)-1
		}
	}
	return false
}

func runEval(opts *RootOptions, args []string, cmd *cobra.Command) error {
	// Merges the root's persistent flags into cmd.Flags().
	cmd.InheritedFlags()
	flags, args := splitEvalArgs(cmd.Flags(), args)
	if err := cmd.Flags().Parse(flags); err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return cmd.Help()
	}

	env, err := opts.prepare(cmd)
	if err != nil {
		return err
	}

	var atoms []string
	for _, arg := range args {
		atoms = append(atoms, strings.Fields(arg)...)
	}
	if len(atoms) == 0 {
		return NewExitError(ExitCommandError, "no atoms to evaluate")
	}

	s, err := env.manager.New(env.settings.Mode)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create session", err)
	}
	defer env.manager.Close(s.ID())

	r, n := s.ProcessAtoms(atoms)
	stack := NewStackView(r.Stack, env.settings.Precision)
	if r.Err != nil {
		failure := EvalFailure{Atom: atoms[n], Index: n, Stack: stack}
		if err := env.formatter.Error(errorCode(r.Err), r.Err.Error(), failure); err != nil {
			return err
		}
		return ReportedExitError(ExitFailure, "evaluation failed", r.Err)
	}
	return env.formatter.Success(stack)
}
