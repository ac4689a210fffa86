// Package cli implements the rpncalc command line: an interactive REPL,
// one-shot evaluation, scenario replay and the operator listing.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/karrick/rpncalc/internal/config"
	"github.com/karrick/rpncalc/internal/session"
	"github.com/karrick/rpncalc/keymap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Config    string // path of the YAML config file
	Precision int    // significant digits for Float values
	Keymap    string // path of a CUE keymap file
	Mode      string // initial keymap mode

	// IDGenerator allows overriding the session ID generator (for testing).
	// If nil, defaults to session.UUIDv7Generator.
	IDGenerator session.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rpncalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rpncalc",
		Short: "Reverse Polish notation calculator",
		Long: `A stack based calculator using Reverse Polish notation.

Operands are pushed onto a stack; operators consume operands from the top
of the stack and push their result. A failed operation leaves the stack
as it was.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().IntVarP(&opts.Precision, "precision", "p", config.DefaultPrecision, "significant digits shown for Float values (0 for shortest exact form)")
	cmd.PersistentFlags().StringVar(&opts.Keymap, "keymap", "", "path to CUE keymap file")
	cmd.PersistentFlags().StringVarP(&opts.Mode, "mode", "m", config.DefaultMode, "initial keymap mode")

	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// environment is what every command needs once flags are parsed.
type environment struct {
	settings  *config.Config
	manager   *session.Manager
	formatter *OutputFormatter
}

// setupLogging installs the default slog handler, at Debug level when
// verbose.
func setupLogging(verbose bool, w io.Writer) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// prepare configures logging, merges the config file with the flags set
// on cmd, and loads the keymap.
func (opts *RootOptions) prepare(cmd *cobra.Command) (*environment, error) {
	setupLogging(opts.Verbose, cmd.ErrOrStderr())

	if !isValidFormat(opts.Format) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	settings := config.Default()
	if opts.Config != "" {
		var err error
		settings, err = config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		slog.Debug("config loaded", "path", opts.Config)
	}
	if flagChanged(cmd, "precision") || opts.Config == "" {
		settings.Precision = opts.Precision
	}
	if flagChanged(cmd, "keymap") || opts.Config == "" {
		settings.Keymap = opts.Keymap
	}
	if flagChanged(cmd, "mode") || (opts.Config == "" && opts.Mode != "") {
		settings.Mode = opts.Mode
	}
	if err := settings.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid settings", err)
	}

	km := keymap.Default()
	if settings.Keymap != "" {
		src, err := os.ReadFile(settings.Keymap)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read keymap", err)
		}
		if km, err = keymap.Load(settings.Keymap, src); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load keymap", err)
		}
		slog.Debug("keymap loaded", "path", settings.Keymap, "modes", km.Modes())
	}
	if _, ok := km.Mode(settings.Mode); !ok {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown keymap mode %q: must be one of %v", settings.Mode, km.Modes()))
	}

	return &environment{
		settings: settings,
		manager:  session.NewManager(opts.IDGenerator, km),
		formatter: &OutputFormatter{
			Format: opts.Format,
			Writer: cmd.OutOrStdout(),
		},
	}, nil
}

// flagChanged reports whether the named flag, local or inherited, was set
// on the command line.
func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}
