package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/karrick/rpncalc"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Calculation error or failed scenario expectation
	ExitCommandError = 2 // Command error (bad flags, unreadable config or script)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the OutputFormatter has already shown the
	// failure to the user.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ReportedExitError wraps err, which the OutputFormatter has already
// written, with an exit code.
func ReportedExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err, Reported: true}
}

// IsReported reports whether err was already written to the user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // ErrorKind name, or "command"
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}
	if _, err := fmt.Fprintf(f.Writer, "error: %s\n", message); err != nil {
		return err
	}
	if details != nil {
		_, err := fmt.Fprintln(f.Writer, details)
		return err
	}
	return nil
}

// NumberView is the display form of one stack value.
type NumberView struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// StackView is the display form of a stack, bottom first.
type StackView []NumberView

// NewStackView renders stack with precision significant digits for
// Float values.
func NewStackView(stack []rpncalc.Number, precision int) StackView {
	view := make(StackView, len(stack))
	for i, n := range stack {
		view[i] = NumberView{Value: n.Format(precision), Kind: n.Kind().String()}
	}
	return view
}

// String renders the stack as a bracketed, space separated list.
func (v StackView) String() string {
	values := make([]string, len(v))
	for i, n := range v {
		values[i] = n.Value
	}
	return "[" + strings.Join(values, " ") + "]"
}

// errorCode returns the ErrorKind name carried by err, or "command".
func errorCode(err error) string {
	if kind := rpncalc.KindOf(err); kind != rpncalc.NoError {
		return kind.String()
	}
	return "command"
}
