package rpncalc

import (
	"strings"
	"unicode"
)

// DefaultDelimiter specifies the delimiter character used between tokens in an RPN expression. For
// instance, in the expression `12,4,×`, the delimiter is the comma. The evaluator can use a
// different delimiter character by invoking the Delimiter() function.
const DefaultDelimiter = ','

// ExpressionConfigurator represents a function that modifies an RPN Expression.
type ExpressionConfigurator func(*Expression) error

// Delimiter allows changing the expected delimiter for an RPN Expression from the default
// delimiter, the comma. Changing the delimiter to one of the operator symbols is not supported.
//
//	func example() {
//		exp, err := rpncalc.New("42|13|+", rpncalc.Delimiter('|'))
//		if err != nil {
//			panic(err)
//		}
//		value, err := exp.Evaluate()
//		if err != nil {
//			panic(err)
//		}
//		fmt.Println("value:", value)
//	}
func Delimiter(someDelimiter rune) ExpressionConfigurator {
	return func(e *Expression) error {
		if _, ok := Lookup(string(someDelimiter)); ok {
			return newErrSyntax("cannot use %c operator for delimiter", someDelimiter)
		}
		if unicode.IsDigit(someDelimiter) || someDelimiter == '.' {
			return newErrSyntax("cannot use %c numeric character for delimiter", someDelimiter)
		}
		e.delimiter = someDelimiter
		return nil
	}
}

// CalculatorOptions passes Configurators to the Calculator each evaluation runs on.
func CalculatorOptions(setters ...Configurator) ExpressionConfigurator {
	return func(e *Expression) error {
		e.setters = append(e.setters, setters...)
		return nil
	}
}

// Expression represents a complete RPN program: a delimited sequence of atoms that must reduce to
// exactly one value.
type Expression struct {
	delimiter rune
	tokens    []string // atoms of the expression, verbatim
	setters   []Configurator
}

// New returns a new RPN Expression based on some expression. Atoms are split on the delimiter and
// trimmed; an empty expression or an empty atom is a syntax error.
//
//	expression, err := rpncalc.New("60,24,×")
//	if err != nil {
//	    panic(err)
//	}
//	result, err := expression.Evaluate()
//	if err != nil {
//	    panic(err)
//	}
func New(someExpression string, setters ...ExpressionConfigurator) (*Expression, error) {
	if strings.TrimSpace(someExpression) == "" {
		return nil, ErrSyntax{": empty expression", nil}
	}
	e := &Expression{
		delimiter: DefaultDelimiter,
	}
	for _, setter := range setters {
		if err := setter(e); err != nil {
			return nil, err
		}
	}
	tokens := strings.Split(someExpression, string(e.delimiter))
	e.tokens = make([]string, len(tokens))
	for idx, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, newErrSyntax("empty token at position %d", idx)
		}
		e.tokens[idx] = token
	}
	return e, nil
}

// Evaluate runs the Expression on a fresh Calculator and returns the single value it reduces to.
// A calculator error aborts evaluation and is returned wrapped in ErrSyntax, so errors.Is still
// matches the calculator sentinels.
func (e *Expression) Evaluate() (Number, error) {
	calc, err := e.Calculator()
	if err != nil {
		return Number{}, err
	}
	stack := calc.Stack()
	switch len(stack) {
	case 0:
		return Number{}, newErrSyntax("empty stack")
	case 1:
		return stack[0], nil
	}
	return Number{}, newErrSyntax("extra parameters: %v", stack)
}

// Calculator runs the Expression on a fresh Calculator and returns it, letting callers inspect
// the whole stack and history rather than a single value.
func (e *Expression) Calculator() (*Calculator, error) {
	calc, err := NewCalculator(e.setters...)
	if err != nil {
		return nil, err
	}
	for idx, token := range e.tokens {
		if r := calc.ProcessToken(token); r.Err != nil {
			return calc, newErrSyntax("atom %d (%s)", idx, token, r.Err)
		}
	}
	return calc, nil
}

// Tokens returns the atoms of the Expression.
func (e Expression) Tokens() []string {
	tokens := make([]string, len(e.tokens))
	copy(tokens, e.tokens)
	return tokens
}

// String returns the string representation of an Expression.
//
//	func example() {
//		exp, err := rpncalc.New(" 5, 3 ,+")
//		if err != nil {
//			panic(err)
//		}
//		s := exp.String() // "5,3,+"
//	}
func (e Expression) String() string {
	return strings.Join(e.tokens, string(e.delimiter))
}
