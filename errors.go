package rpncalc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the calculator can report.
type ErrorKind int

const (
	NoError ErrorKind = iota
	InvalidNumberFormat
	UnknownOperator
	InsufficientOperands
	DivisionByZero
	DomainError
	Overflow
	TypeError
)

var errorKindNames = [...]string{
	NoError:              "NoError",
	InvalidNumberFormat:  "InvalidNumberFormat",
	UnknownOperator:      "UnknownOperator",
	InsufficientOperands: "InsufficientOperands",
	DivisionByZero:       "DivisionByZero",
	DomainError:          "DomainError",
	Overflow:             "Overflow",
	TypeError:            "TypeError",
}

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// ParseErrorKind returns the ErrorKind whose name is s.
func ParseErrorKind(s string) (ErrorKind, bool) {
	for k, name := range errorKindNames {
		if name == s {
			return ErrorKind(k), true
		}
	}
	return NoError, false
}

// Error is returned by the calculator for every recoverable failure. The
// stack is left intact, minus only the transient operator entry, whenever
// an Error is returned.
type Error struct {
	Kind    ErrorKind
	Token   string // token being processed when the failure occurred
	Message string
}

// Error returns the error string representation for Error values.
func (e *Error) Error() string {
	if e.Token == "" {
		return e.Kind.String() + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Token, e.Message)
}

// Is allows errors.Is to match an Error against any Error of the same Kind,
// including the exported sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidNumberFormat  = &Error{Kind: InvalidNumberFormat, Message: "invalid number"}
	ErrUnknownOperator      = &Error{Kind: UnknownOperator, Message: "unknown operator"}
	ErrInsufficientOperands = &Error{Kind: InsufficientOperands, Message: "insufficient operands"}
	ErrDivisionByZero       = &Error{Kind: DivisionByZero, Message: "division by zero"}
	ErrDomain               = &Error{Kind: DomainError, Message: "operand outside domain"}
	ErrOverflow             = &Error{Kind: Overflow, Message: "result out of range"}
	ErrType                 = &Error{Kind: TypeError, Message: "integer operand required"}
)

func newError(kind ErrorKind, token, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Token: token, Message: fmt.Sprintf(format, a...)}
}

// KindOf returns the ErrorKind carried by err, or NoError when err is nil
// or carries no calculator Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}

// ErrSyntax error is returned if the specified RPN expression
// does not evaluate because of a syntax error.
type ErrSyntax struct {
	Message string
	Err     error
}

// Error returns the error string representation for ErrSyntax errors.
func (e ErrSyntax) Error() string {
	if e.Err == nil {
		return "syntax error" + e.Message
	}
	return "syntax error" + e.Message + ": " + e.Err.Error()
}

// Unwrap returns the calculator error that aborted evaluation, if any.
func (e ErrSyntax) Unwrap() error { return e.Err }

func newErrSyntax(a ...interface{}) ErrSyntax {
	var err error
	var format, message string
	var ok bool
	if len(a) == 0 {
		return ErrSyntax{": no reason given", nil}
	}
	// if last item is error: save it
	if err, ok = a[len(a)-1].(error); ok {
		a = a[:len(a)-1] // pop it
	}
	// if items left, first ought to be format string
	if len(a) > 0 {
		if format, ok = a[0].(string); ok {
			a = a[1:] // unshift
			message = fmt.Sprintf(format, a...)
		}
	}
	if message != "" {
		message = ": " + message
	}
	return ErrSyntax{message, err}
}
