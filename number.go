package rpncalc

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a Number as Integer or Float.
type Kind uint8

const (
	Integer Kind = iota
	Float
)

// String returns "Integer" or "Float".
func (k Kind) String() string {
	if k == Integer {
		return "Integer"
	}
	return "Float"
}

// Number is a value on the calculator stack. Integer values arise from
// literals without a decimal point and from operations whose result is
// exact and integral; everything else is Float.
type Number struct {
	kind Kind
	i    int64
	f    float64
}

// Int returns an Integer Number.
func Int(i int64) Number { return Number{kind: Integer, i: i} }

// Float64 returns a Float Number.
func Float64(f float64) Number { return Number{kind: Float, f: f} }

// Kind returns the classification of n.
func (n Number) Kind() Kind { return n.kind }

// IsInteger returns true iff n is classified as Integer.
func (n Number) IsInteger() bool { return n.kind == Integer }

// Int64 returns the integral value of n, truncating a Float toward zero.
func (n Number) Int64() int64 {
	if n.kind == Integer {
		return n.i
	}
	return int64(n.f)
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	if n.kind == Integer {
		return float64(n.i)
	}
	return n.f
}

// IsIntegral returns true when the value of n has no fractional part,
// regardless of its classification.
func (n Number) IsIntegral() bool {
	if n.kind == Integer {
		return true
	}
	return !math.IsInf(n.f, 0) && n.f == math.Trunc(n.f)
}

// IsZero returns true when n is zero.
func (n Number) IsZero() bool {
	if n.kind == Integer {
		return n.i == 0
	}
	return n.f == 0
}

// Sign returns -1, 0 or +1. NaN reports 0.
func (n Number) Sign() int {
	if n.kind == Integer {
		switch {
		case n.i < 0:
			return -1
		case n.i > 0:
			return 1
		}
		return 0
	}
	switch {
	case n.f < 0:
		return -1
	case n.f > 0:
		return 1
	}
	return 0
}

// Equal reports whether a and b have the same classification and value.
// Two Float NaN values are considered equal.
func (n Number) Equal(o Number) bool {
	if n.kind != o.kind {
		return false
	}
	if n.kind == Integer {
		return n.i == o.i
	}
	if math.IsNaN(n.f) && math.IsNaN(o.f) {
		return true
	}
	return n.f == o.f
}

// String renders n at full precision: Integers in decimal, Floats in the
// shortest representation that round-trips, always showing a decimal
// point or exponent so the classification survives printing.
func (n Number) String() string {
	if n.kind == Integer {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f, -1)
}

// Format renders n with at most the given number of significant digits
// for Float values. Integers are always printed in full.
func (n Number) Format(precision int) string {
	if n.kind == Integer {
		return strconv.FormatInt(n.i, 10)
	}
	if precision <= 0 {
		precision = -1
	}
	return formatFloat(n.f, precision)
}

func formatFloat(f float64, precision int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', precision, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseNumber converts a numeric literal into a Number: Integer when the
// literal carries no decimal point, Float otherwise. The error is an
// *Error of kind InvalidNumberFormat or Overflow.
func ParseNumber(literal string) (Number, error) { return parseLiteral(literal) }

func parseLiteral(token string) (Number, error) {
	if strings.ContainsAny(token, "xX_") {
		return Number{}, newError(InvalidNumberFormat, token, "invalid number")
	}
	if !strings.Contains(token, ".") {
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return Number{}, newError(Overflow, token, "integer literal out of range")
			}
			return Number{}, newError(InvalidNumberFormat, token, "invalid number")
		}
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return Number{}, newError(Overflow, token, "float literal out of range")
		}
		return Number{}, newError(InvalidNumberFormat, token, "invalid number")
	}
	return Float64(f), nil
}
