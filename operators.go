package rpncalc

import (
	"math"
	"math/rand"
	"sort"
	"unicode/utf8"
)

// Operator is an immutable entry of the operator registry. Exactly one of
// the evaluation functions is set, matching the operator's arity.
type Operator struct {
	symbol      string
	arity       int
	description string

	constant func(random func() float64) Number
	unary    func(x Number) (Number, error)
	binary   func(x, y Number) (Number, error)
}

// Symbol returns the text that selects this operator.
func (o *Operator) Symbol() string { return o.symbol }

// Arity returns the number of operands the operator consumes: 0, 1 or 2.
func (o *Operator) Arity() int { return o.arity }

// Description returns a short human readable description.
func (o *Operator) Description() string { return o.description }

// OperatorInfo is the public view of a registry entry, used to build
// keypads and help listings.
type OperatorInfo struct {
	Symbol      string `json:"symbol"`
	Arity       int    `json:"arity"`
	Description string `json:"description"`
}

func constant(v float64) func(func() float64) Number {
	return func(func() float64) Number { return Float64(v) }
}

func randomFloat(random func() float64) Number {
	if random == nil {
		random = rand.Float64
	}
	return Float64(random())
}

// operators is the registry, in keypad order. It is never mutated after
// package initialization.
var operators = []*Operator{
	{symbol: "π", description: "pi", constant: constant(math.Pi)},
	{symbol: "τ", description: "tau (2π)", constant: constant(2 * math.Pi)},
	{symbol: "φ", description: "golden ratio", constant: constant(math.Phi)},
	{symbol: "e", description: "Euler's number", constant: constant(math.E)},
	{symbol: "Rand", description: "uniform random number in [0,1)", constant: randomFloat},

	{symbol: "√", arity: 1, description: "square root", unary: sqrt},
	{symbol: "sin", arity: 1, description: "sine", unary: sin},
	{symbol: "cos", arity: 1, description: "cosine", unary: cos},
	{symbol: "tan", arity: 1, description: "tangent", unary: tan},
	{symbol: "asin", arity: 1, description: "arcsine", unary: asin},
	{symbol: "acos", arity: 1, description: "arccosine", unary: acos},
	{symbol: "atan", arity: 1, description: "arctangent", unary: atan},
	{symbol: "sinh", arity: 1, description: "hyperbolic sine", unary: sinh},
	{symbol: "cosh", arity: 1, description: "hyperbolic cosine", unary: cosh},
	{symbol: "tanh", arity: 1, description: "hyperbolic tangent", unary: tanh},
	{symbol: "asinh", arity: 1, description: "inverse hyperbolic sine", unary: asinh},
	{symbol: "acosh", arity: 1, description: "inverse hyperbolic cosine", unary: acosh},
	{symbol: "atanh", arity: 1, description: "inverse hyperbolic tangent", unary: atanh},
	{symbol: "ln", arity: 1, description: "natural logarithm", unary: ln},
	{symbol: "log", arity: 1, description: "base-10 logarithm", unary: log10},
	{symbol: "lg2", arity: 1, description: "base-2 logarithm", unary: log2},
	{symbol: "1/x", arity: 1, description: "reciprocal", unary: reciprocal},
	{symbol: "!", arity: 1, description: "factorial", unary: factorial},
	{symbol: "=", arity: 1, description: "truncate toward zero", unary: truncate},
	{symbol: "2^x", arity: 1, description: "power of two", unary: exp2},
	{symbol: "x²", arity: 1, description: "square", unary: square},

	{symbol: "+", arity: 2, description: "add", binary: add},
	{symbol: "−", arity: 2, description: "subtract", binary: subtract},
	{symbol: "-", arity: 2, description: "subtract", binary: subtract},
	{symbol: "×", arity: 2, description: "multiply", binary: multiply},
	{symbol: "*", arity: 2, description: "multiply", binary: multiply},
	{symbol: "/", arity: 2, description: "divide", binary: divide},
	{symbol: "÷", arity: 2, description: "floor divide", binary: floorDivide},
	{symbol: "^", arity: 2, description: "power", binary: power},
	{symbol: "%", arity: 2, description: "modulus", binary: modulus},
	{symbol: "n√", arity: 2, description: "nth root", binary: nthRoot},
	{symbol: "⊕", arity: 2, description: "Euclidean norm", binary: hypot},
	{symbol: "E", arity: 2, description: "scientific notation", binary: scientific},
	{symbol: "nCk", arity: 2, description: "binomial coefficient", binary: binomial},
}

var (
	operatorIndex map[string]*Operator
	// bySuffixLength lists symbols longest first, so the tokenizer prefers
	// "asin" over "sin" and "n√" over "√".
	bySuffixLength []string
)

func init() {
	operatorIndex = make(map[string]*Operator, len(operators))
	bySuffixLength = make([]string, 0, len(operators))
	for _, op := range operators {
		if _, ok := operatorIndex[op.symbol]; ok {
			panic("rpncalc: duplicate operator " + op.symbol)
		}
		operatorIndex[op.symbol] = op
		bySuffixLength = append(bySuffixLength, op.symbol)
	}
	sort.SliceStable(bySuffixLength, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(bySuffixLength[i]), utf8.RuneCountInString(bySuffixLength[j])
		if li != lj {
			return li > lj
		}
		return bySuffixLength[i] < bySuffixLength[j]
	})
}

// Lookup returns the registered operator for symbol.
func Lookup(symbol string) (*Operator, bool) {
	op, ok := operatorIndex[symbol]
	return op, ok
}

// ListOperators returns every registered operator in keypad order.
func ListOperators() []OperatorInfo {
	infos := make([]OperatorInfo, len(operators))
	for i, op := range operators {
		infos[i] = OperatorInfo{Symbol: op.symbol, Arity: op.arity, Description: op.description}
	}
	return infos
}
