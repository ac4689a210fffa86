package rpncalc

import (
	"strings"
	"unicode"
)

// Configurator represents a function that modifies a Calculator.
type Configurator func(*Calculator) error

// RandomSource replaces the generator used by the Rand operator. The
// function must return values in [0,1).
//
//	calc, err := rpncalc.NewCalculator(rpncalc.RandomSource(rng.Float64))
//	if err != nil {
//		panic(err)
//	}
func RandomSource(random func() float64) Configurator {
	return func(c *Calculator) error {
		if random == nil {
			return newErrSyntax("cannot use nil random source")
		}
		c.random = random
		return nil
	}
}

// entry is one stack slot: a Number, or the transient marker of the
// operator being evaluated.
type entry struct {
	num Number
	op  *Operator
}

// Calculator owns one session's operand stack and input history. It is
// not safe for concurrent use; independent sessions use independent
// Calculators.
type Calculator struct {
	stack   []entry
	history []string
	random  func() float64
}

// Result is the outcome of processing one input atom: the stack after the
// call and the error that stopped processing, if any.
type Result struct {
	Stack []Number
	Err   error
}

// Kind returns the ErrorKind of r.Err.
func (r Result) Kind() ErrorKind { return KindOf(r.Err) }

// NewCalculator returns a Calculator with an empty stack and history.
func NewCalculator(setters ...Configurator) (*Calculator, error) {
	c := &Calculator{}
	for _, setter := range setters {
		if err := setter(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ProcessToken records raw in the history, splits it with Tokenize, and
// applies each resulting token to the stack in order. Processing stops at
// the first failing token. A failed operator leaves its operands on the
// stack; a failed literal pushes nothing.
//
//	calc.ProcessToken("5")
//	calc.ProcessToken("3")
//	result := calc.ProcessToken("+") // result.Stack: [8]
func (c *Calculator) ProcessToken(raw string) Result {
	if raw == "" {
		return Result{Stack: c.Stack(), Err: newError(InvalidNumberFormat, raw, "empty input")}
	}
	c.history = append(c.history, raw)
	for _, token := range Tokenize(raw) {
		if err := c.apply(token); err != nil {
			return Result{Stack: c.Stack(), Err: err}
		}
	}
	return Result{Stack: c.Stack()}
}

func (c *Calculator) apply(token string) error {
	op, ok := Lookup(token)
	if !ok {
		return c.pushLiteral(token)
	}
	if op.arity == 0 {
		c.stack = append(c.stack, entry{num: op.constant(c.random)})
		return nil
	}
	if len(c.stack) < op.arity {
		return newError(InsufficientOperands, token, "operator requires %d operands; stack has %d", op.arity, len(c.stack))
	}

	// The operator joins the stack while it is evaluated, and leaves it
	// again on every path: with its operands on success, alone on failure.
	c.stack = append(c.stack, entry{op: op})
	indexOfFirstArg := len(c.stack) - op.arity - 1
	result, err := evaluate(c.stack[indexOfFirstArg:])
	if err != nil {
		c.stack = c.stack[:len(c.stack)-1]
		if e, ok := err.(*Error); ok && e.Token == "" {
			e.Token = token
		}
		return err
	}
	c.stack = append(c.stack[:indexOfFirstArg], entry{num: result})
	return nil
}

// evaluate applies the operator at the top of window to the operands
// beneath it.
func evaluate(window []entry) (Number, error) {
	op := window[len(window)-1].op
	for _, arg := range window[:len(window)-1] {
		if arg.op != nil {
			return Number{}, newError(TypeError, op.symbol, "operand is operator %s", arg.op.symbol)
		}
	}
	switch op.arity {
	case 1:
		return op.unary(window[0].num)
	case 2:
		return op.binary(window[0].num, window[1].num)
	}
	return Number{}, newError(UnknownOperator, op.symbol, "unsupported arity %d", op.arity)
}

func (c *Calculator) pushLiteral(token string) error {
	n, err := parseLiteral(token)
	if err != nil {
		if !strings.ContainsFunc(token, unicode.IsDigit) && strings.Trim(token, "+-.") != "" {
			return newError(UnknownOperator, token, "unknown operator")
		}
		return err
	}
	c.stack = append(c.stack, entry{num: n})
	return nil
}

// Stack returns a copy of the stack, bottom first.
func (c *Calculator) Stack() []Number {
	s := make([]Number, len(c.stack))
	for i, e := range c.stack {
		s[i] = e.num
	}
	return s
}

// Depth returns the number of values on the stack.
func (c *Calculator) Depth() int { return len(c.stack) }

// History returns a copy of every atom submitted to ProcessToken, in order.
func (c *Calculator) History() []string {
	h := make([]string, len(c.history))
	copy(h, c.history)
	return h
}

// ClearStack empties the stack.
func (c *Calculator) ClearStack() { c.stack = c.stack[:0] }

// ClearHistory empties the history.
func (c *Calculator) ClearHistory() { c.history = c.history[:0] }

// ListOperators returns the operator registry.
func (c *Calculator) ListOperators() []OperatorInfo { return ListOperators() }
