package rpncalc

import (
	"math"
	"math/bits"
)

// Evaluation functions. Each takes exactly the operand count of its
// operator's arity and returns either a Number or an *Error. Operands
// arrive in push order: x is the deeper, first-pushed value.

func overflow(format string, a ...interface{}) error {
	return newError(Overflow, "", format, a...)
}

func domain(format string, a ...interface{}) error {
	return newError(DomainError, "", format, a...)
}

func divisionByZero() error {
	return newError(DivisionByZero, "", "division by zero")
}

// floatResult classifies a float64 result computed from operands. An
// infinite result from finite operands is Overflow; a NaN result from
// non-NaN operands is DomainError.
func floatResult(r float64, operands ...Number) (Number, error) {
	for _, o := range operands {
		if f := o.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return Float64(r), nil
		}
	}
	if math.IsInf(r, 0) {
		return Number{}, overflow("result out of range")
	}
	if math.IsNaN(r) {
		return Number{}, domain("result undefined")
	}
	return Float64(r), nil
}

// toInteger converts an integral float64 into an Integer.
func toInteger(f float64) (Number, error) {
	if math.IsNaN(f) {
		return Number{}, domain("cannot convert NaN to integer")
	}
	// 2^63 is exactly representable; anything at or above it is not an int64.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return Number{}, overflow("%g out of integer range", f)
	}
	return Int(int64(f)), nil
}

// Checked int64 arithmetic.

func addInt(a, b int64) (int64, bool) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, false
	}
	return s, true
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	if (a >= 0 && b < 0 && d < 0) || (a < 0 && b > 0 && d >= 0) {
		return 0, false
	}
	return d, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

// floorDivInt rounds toward negative infinity.
func floorDivInt(a, b int64) (int64, bool) {
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, true
}

// floorModInt returns a result with the sign of the divisor.
func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func floorModFloat(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Unary operators.

func sqrt(x Number) (Number, error) {
	if x.Sign() < 0 {
		return Number{}, domain("square root of negative number")
	}
	return floatResult(math.Sqrt(x.Float()), x)
}

func sin(x Number) (Number, error) { return floatResult(math.Sin(x.Float()), x) }
func cos(x Number) (Number, error) { return floatResult(math.Cos(x.Float()), x) }
func tan(x Number) (Number, error) { return floatResult(math.Tan(x.Float()), x) }

func asin(x Number) (Number, error) {
	if f := x.Float(); f < -1 || f > 1 {
		return Number{}, domain("asin requires operand in [-1,1]")
	}
	return floatResult(math.Asin(x.Float()), x)
}

func acos(x Number) (Number, error) {
	if f := x.Float(); f < -1 || f > 1 {
		return Number{}, domain("acos requires operand in [-1,1]")
	}
	return floatResult(math.Acos(x.Float()), x)
}

func atan(x Number) (Number, error)  { return floatResult(math.Atan(x.Float()), x) }
func sinh(x Number) (Number, error)  { return floatResult(math.Sinh(x.Float()), x) }
func cosh(x Number) (Number, error)  { return floatResult(math.Cosh(x.Float()), x) }
func tanh(x Number) (Number, error)  { return floatResult(math.Tanh(x.Float()), x) }
func asinh(x Number) (Number, error) { return floatResult(math.Asinh(x.Float()), x) }

func acosh(x Number) (Number, error) {
	if x.Float() < 1 {
		return Number{}, domain("acosh requires operand >= 1")
	}
	return floatResult(math.Acosh(x.Float()), x)
}

func atanh(x Number) (Number, error) {
	if f := x.Float(); f <= -1 || f >= 1 {
		return Number{}, domain("atanh requires operand in (-1,1)")
	}
	return floatResult(math.Atanh(x.Float()), x)
}

func logarithm(x Number, fn func(float64) float64) (Number, error) {
	if x.Float() <= 0 {
		return Number{}, domain("logarithm requires positive operand")
	}
	return floatResult(fn(x.Float()), x)
}

func ln(x Number) (Number, error)    { return logarithm(x, math.Log) }
func log10(x Number) (Number, error) { return logarithm(x, math.Log10) }
func log2(x Number) (Number, error)  { return logarithm(x, math.Log2) }

func reciprocal(x Number) (Number, error) {
	if x.IsZero() {
		return Number{}, divisionByZero()
	}
	return floatResult(1/x.Float(), x)
}

// factorial computes an exact product for Integer operands and Γ(x+1)
// for Float operands. Negative integral operands have no factorial.
func factorial(x Number) (Number, error) {
	if x.IsIntegral() && x.Sign() < 0 {
		return Number{}, domain("factorial of negative integer")
	}
	if !x.IsInteger() {
		return floatResult(math.Gamma(x.Float()+1), x)
	}
	result := int64(1)
	for i := int64(2); i <= x.Int64(); i++ {
		var ok bool
		if result, ok = mulInt(result, i); !ok {
			return Number{}, overflow("factorial of %d out of integer range", x.Int64())
		}
	}
	return Int(result), nil
}

func truncate(x Number) (Number, error) {
	if x.IsInteger() {
		return x, nil
	}
	if math.IsInf(x.Float(), 0) {
		return Number{}, overflow("cannot truncate infinity")
	}
	return toInteger(math.Trunc(x.Float()))
}

func exp2(x Number) (Number, error) {
	if x.IsInteger() && x.Int64() >= 0 {
		if x.Int64() > 62 {
			return Number{}, overflow("2^%d out of integer range", x.Int64())
		}
		return Int(1 << uint(x.Int64())), nil
	}
	return floatResult(math.Exp2(x.Float()), x)
}

func square(x Number) (Number, error) {
	if x.IsInteger() {
		p, ok := mulInt(x.Int64(), x.Int64())
		if !ok {
			return Number{}, overflow("%d² out of integer range", x.Int64())
		}
		return Int(p), nil
	}
	return floatResult(x.Float()*x.Float(), x)
}

// Binary operators.

func add(x, y Number) (Number, error) {
	if x.IsInteger() && y.IsInteger() {
		s, ok := addInt(x.Int64(), y.Int64())
		if !ok {
			return Number{}, overflow("integer addition overflow")
		}
		return Int(s), nil
	}
	return floatResult(x.Float()+y.Float(), x, y)
}

func subtract(x, y Number) (Number, error) {
	if x.IsInteger() && y.IsInteger() {
		d, ok := subInt(x.Int64(), y.Int64())
		if !ok {
			return Number{}, overflow("integer subtraction overflow")
		}
		return Int(d), nil
	}
	return floatResult(x.Float()-y.Float(), x, y)
}

func multiply(x, y Number) (Number, error) {
	if x.IsInteger() && y.IsInteger() {
		p, ok := mulInt(x.Int64(), y.Int64())
		if !ok {
			return Number{}, overflow("integer multiplication overflow")
		}
		return Int(p), nil
	}
	return floatResult(x.Float()*y.Float(), x, y)
}

// divide stays Integer when both operands are Integer and the division is
// exact; otherwise it is true division.
func divide(x, y Number) (Number, error) {
	if y.IsZero() {
		return Number{}, divisionByZero()
	}
	if x.IsInteger() && y.IsInteger() && floorModInt(x.Int64(), y.Int64()) == 0 {
		q, ok := floorDivInt(x.Int64(), y.Int64())
		if !ok {
			return Number{}, overflow("integer division overflow")
		}
		return Int(q), nil
	}
	return floatResult(x.Float()/y.Float(), x, y)
}

func floorDivide(x, y Number) (Number, error) {
	if y.IsZero() {
		return Number{}, divisionByZero()
	}
	if x.IsInteger() && y.IsInteger() {
		q, ok := floorDivInt(x.Int64(), y.Int64())
		if !ok {
			return Number{}, overflow("integer division overflow")
		}
		return Int(q), nil
	}
	q := math.Floor(x.Float() / y.Float())
	if math.IsInf(q, 0) {
		return Number{}, overflow("quotient out of range")
	}
	return toInteger(q)
}

func modulus(x, y Number) (Number, error) {
	if y.IsZero() {
		return Number{}, divisionByZero()
	}
	if x.IsInteger() && y.IsInteger() {
		return Int(floorModInt(x.Int64(), y.Int64())), nil
	}
	return floatResult(floorModFloat(x.Float(), y.Float()), x, y)
}

func power(x, y Number) (Number, error) {
	if x.IsZero() && y.Sign() < 0 {
		return Number{}, divisionByZero()
	}
	if x.IsInteger() && y.IsInteger() && y.Int64() >= 0 {
		p, ok := powInt(x.Int64(), y.Int64())
		if !ok {
			return Number{}, overflow("%d^%d out of integer range", x.Int64(), y.Int64())
		}
		return Int(p), nil
	}
	return floatResult(math.Pow(x.Float(), y.Float()), x, y)
}

func nthRoot(x, y Number) (Number, error) {
	if x.Sign() < 0 {
		return Number{}, domain("root of negative number")
	}
	if y.IsZero() {
		return Number{}, divisionByZero()
	}
	return floatResult(math.Pow(x.Float(), 1/y.Float()), x, y)
}

func hypot(x, y Number) (Number, error) {
	return floatResult(math.Hypot(x.Float(), y.Float()), x, y)
}

func scientific(x, y Number) (Number, error) {
	if x.IsZero() {
		return Float64(0), nil
	}
	return floatResult(x.Float()*math.Pow(10, y.Float()), x, y)
}

// binomial requires Integer operands. It walks C(n-k+i, i) for i up to k,
// each step exact in 128 bits, so it stops at the first value that no
// longer fits an int64.
func binomial(x, y Number) (Number, error) {
	if !x.IsInteger() || !y.IsInteger() {
		return Number{}, newError(TypeError, "", "binomial coefficient requires integer operands")
	}
	n, k := x.Int64(), y.Int64()
	if n < 0 || k < 0 {
		return Number{}, domain("binomial coefficient requires non-negative operands")
	}
	if k > n {
		return Int(0), nil
	}
	if n-k < k {
		k = n - k
	}
	c := uint64(1)
	for i := uint64(1); i <= uint64(k); i++ {
		hi, lo := bits.Mul64(c, uint64(n-k)+i)
		if hi >= i {
			return Number{}, overflow("binomial coefficient out of integer range")
		}
		c, _ = bits.Div64(hi, lo, i)
		if c > math.MaxInt64 {
			return Number{}, overflow("binomial coefficient out of integer range")
		}
	}
	return Int(int64(c)), nil
}
