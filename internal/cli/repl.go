package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/karrick/rpncalc"
	"github.com/karrick/rpncalc/internal/session"
)

const replHelp = `Enter atoms separated by whitespace: numbers, operators, or a number
followed directly by an operator (e.g. 5+). Commands:
  :clear          empty the stack
  :clearhist      empty the history
  :hist           show the history
  :ops            list operators
  :mode [name]    show keymap modes, or switch to one
  :help           show this help
  :quit           leave`

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator session",
		Long: `Read atoms line by line and print the stack after each line.

Every atom on a line is processed in turn; the rest of the line is skipped
after an atom fails. The prompt is shown only when input is a terminal.

` + replHelp,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(rootOpts, cmd)
		},
	}
	return cmd
}

// isTerminal determines whether r is a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runRepl(opts *RootOptions, cmd *cobra.Command) error {
	env, err := opts.prepare(cmd)
	if err != nil {
		return err
	}
	s, err := env.manager.New(env.settings.Mode)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create session", err)
	}
	defer env.manager.Close(s.ID())

	in := cmd.InOrStdin()
	r := &repl{
		session:   s,
		formatter: env.formatter,
		precision: env.settings.Precision,
	}
	if isTerminal(in) {
		r.prompt = env.settings.Prompt
	}
	return r.run(in)
}

type repl struct {
	session   *session.Session
	formatter *OutputFormatter
	precision int
	prompt    string // empty when input is not a terminal
}

func (r *repl) out() io.Writer { return r.formatter.Writer }

func (r *repl) stack() StackView {
	return NewStackView(r.session.Calculator().Stack(), r.precision)
}

func (r *repl) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if r.prompt != "" {
			fmt.Fprint(r.out(), r.prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := r.command(strings.Fields(line))
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}
		if err := r.line(strings.Fields(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	if r.prompt != "" {
		fmt.Fprintln(r.out())
	}
	return nil
}

// line processes the atoms of one input line.
func (r *repl) line(atoms []string) error {
	result, n := r.session.ProcessAtoms(atoms)
	stack := NewStackView(result.Stack, r.precision)
	if result.Err != nil {
		slog.Debug("line stopped", "session", r.session.ID(), "atom", atoms[n], "skipped", len(atoms)-n-1)
		return r.formatter.Error(errorCode(result.Err), result.Err.Error(), stack)
	}
	return r.formatter.Success(stack)
}

// command runs a colon command. It returns true when the session should
// end.
func (r *repl) command(fields []string) (bool, error) {
	calc := r.session.Calculator()
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":clear":
		calc.ClearStack()
		return false, r.formatter.Success(r.stack())
	case ":clearhist":
		calc.ClearHistory()
		return false, r.formatter.Success(historyView(calc.History()))
	case ":hist":
		return false, r.formatter.Success(historyView(calc.History()))
	case ":ops":
		if r.formatter.Format == "json" {
			return false, r.formatter.Success(rpncalc.ListOperators())
		}
		OperatorList(rpncalc.ListOperators()).write(r.out())
		return false, nil
	case ":mode":
		if len(fields) > 1 {
			if err := r.session.SetMode(fields[1]); err != nil {
				return false, r.formatter.Error("command", err.Error(), nil)
			}
		}
		return false, r.formatter.Success(r.modes())
	case ":help":
		_, err := fmt.Fprintln(r.out(), replHelp)
		return false, err
	}
	return false, r.formatter.Error("command", fmt.Sprintf("unknown command %s; try :help", fields[0]), nil)
}

// historyView is the display form of the history, oldest first.
type historyView []string

func (h historyView) String() string {
	if len(h) == 0 {
		return "(no history)"
	}
	var b strings.Builder
	for i, atom := range h {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%3d  %s", i+1, atom)
	}
	return b.String()
}

// ModeView is the display form of one keymap mode.
type ModeView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type modesView []ModeView

func (m modesView) String() string {
	var b strings.Builder
	for i, mode := range m {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := " "
		if mode.Active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-12s %s", marker, mode.Name, mode.Description)
	}
	return b.String()
}

func (r *repl) modes() modesView {
	km := r.session.Keymap()
	var view modesView
	for _, name := range km.Modes() {
		mode, _ := km.Mode(name)
		view = append(view, ModeView{
			Name:        name,
			Description: mode.Description,
			Active:      name == r.session.Mode(),
		})
	}
	return view
}
