package rpncalc

import (
	"math"
	"testing"
)

func evaluateAtoms(t *testing.T, atoms ...string) Result {
	t.Helper()
	_, r := process(t, atoms...)
	return r
}

func top(r Result) Number {
	if len(r.Stack) == 0 {
		return Number{}
	}
	return r.Stack[len(r.Stack)-1]
}

func TestEvaluateExact(t *testing.T) {
	list := map[string]struct {
		atoms    []string
		expected Number
	}{
		"add ints":             {[]string{"5", "3", "+"}, Int(8)},
		"add mixed":            {[]string{"5", "0.5", "+"}, Float64(5.5)},
		"subtract":             {[]string{"3", "5", "−"}, Int(-2)},
		"multiply":             {[]string{"-4", "5", "×"}, Int(-20)},
		"divide exact":         {[]string{"-6", "3", "/"}, Int(-2)},
		"divide inexact":       {[]string{"-7", "2", "/"}, Float64(-3.5)},
		"divide floats":        {[]string{"6.0", "2", "/"}, Float64(3)},
		"floor divide":         {[]string{"7", "2", "÷"}, Int(3)},
		"floor divide neg":     {[]string{"-7", "2", "÷"}, Int(-4)},
		"floor divide float":   {[]string{"7.5", "2", "÷"}, Int(3)},
		"modulus":              {[]string{"7", "3", "%"}, Int(1)},
		"modulus neg dividend": {[]string{"-7", "3", "%"}, Int(2)},
		"modulus neg divisor":  {[]string{"7", "-3", "%"}, Int(-2)},
		"modulus float":        {[]string{"5.5", "2", "%"}, Float64(1.5)},
		"power":                {[]string{"2", "10", "^"}, Int(1024)},
		"power negative base":  {[]string{"-3", "3", "^"}, Int(-27)},
		"power zero":           {[]string{"0", "0", "^"}, Int(1)},
		"power negative exp":   {[]string{"2", "-1", "^"}, Float64(0.5)},
		"power float":          {[]string{"4", "0.5", "^"}, Float64(2)},
		"hypot":                {[]string{"3", "4", "⊕"}, Float64(5)},
		"scientific":           {[]string{"1.5", "3", "E"}, Float64(1500)},
		"scientific zero":      {[]string{"0", "400", "E"}, Float64(0)},
		"binomial":             {[]string{"5", "2", "nCk"}, Int(10)},
		"binomial k > n":       {[]string{"2", "5", "nCk"}, Int(0)},
		"binomial large":       {[]string{"66", "33", "nCk"}, Int(7219428434016265740)},
		"binomial zero":        {[]string{"0", "0", "nCk"}, Int(1)},
		"factorial":            {[]string{"5", "!"}, Int(120)},
		"factorial zero":       {[]string{"0", "!"}, Int(1)},
		"factorial max":        {[]string{"20", "!"}, Int(2432902008176640000)},
		"truncate positive":    {[]string{"3.7", "="}, Int(3)},
		"truncate negative":    {[]string{"-3.7", "="}, Int(-3)},
		"truncate integer":     {[]string{"12", "="}, Int(12)},
		"exp2 integer":         {[]string{"10", "2^x"}, Int(1024)},
		"exp2 negative":        {[]string{"-2", "2^x"}, Float64(0.25)},
		"square integer":       {[]string{"-4", "x²"}, Int(16)},
		"square float":         {[]string{"1.5", "x²"}, Float64(2.25)},
		"reciprocal":           {[]string{"4", "1/x"}, Float64(0.25)},
		"sqrt":                 {[]string{"16", "√"}, Float64(4)},
		"lg2":                  {[]string{"8", "lg2"}, Float64(3)},
		"ln one":               {[]string{"1", "ln"}, Float64(0)},
		"sin zero":             {[]string{"0", "sin"}, Float64(0)},
		"cos zero":             {[]string{"0", "cos"}, Float64(1)},
		"tau":                  {[]string{"τ"}, Float64(2 * math.Pi)},
		"phi":                  {[]string{"φ"}, Float64(math.Phi)},
		"euler":                {[]string{"e"}, Float64(math.E)},
	}
	for name, item := range list {
		r := evaluateAtoms(t, item.atoms...)
		if r.Err != nil {
			t.Errorf("Case: %s; Actual: %s; Expected: %v", name, r.Err, item.expected)
			continue
		}
		if actual := top(r); !actual.Equal(item.expected) {
			t.Errorf("Case: %s; Actual: %s %v; Expected: %s %v", name, actual.Kind(), actual, item.expected.Kind(), item.expected)
		}
	}
}

func TestEvaluateApproximate(t *testing.T) {
	const epsilon = 1e-12
	list := map[string]struct {
		atoms    []string
		expected float64
	}{
		"nth root":         {[]string{"27", "3", "n√"}, 3},
		"log":              {[]string{"100", "log"}, 2},
		"ln e":             {[]string{"e", "ln"}, 1},
		"gamma factorial":  {[]string{"0.5", "!"}, math.Sqrt(math.Pi) / 2},
		"float factorial":  {[]string{"5.0", "!"}, 120},
		"asin":             {[]string{"1", "asin"}, math.Pi / 2},
		"acos":             {[]string{"1", "acos"}, 0},
		"atan":             {[]string{"1", "atan"}, math.Pi / 4},
		"tan":              {[]string{"0.5", "tan"}, math.Tan(0.5)},
		"sinh":             {[]string{"1", "sinh"}, math.Sinh(1)},
		"cosh":             {[]string{"1", "cosh"}, math.Cosh(1)},
		"tanh":             {[]string{"1", "tanh"}, math.Tanh(1)},
		"asinh":            {[]string{"1", "asinh"}, math.Asinh(1)},
		"acosh":            {[]string{"2", "acosh"}, math.Acosh(2)},
		"atanh":            {[]string{"0.5", "atanh"}, math.Atanh(0.5)},
		"sin pi":           {[]string{"π", "sin"}, 0},
		"scientific small": {[]string{"2", "-3", "E"}, 0.002},
	}
	for name, item := range list {
		r := evaluateAtoms(t, item.atoms...)
		if r.Err != nil {
			t.Errorf("Case: %s; Actual: %s; Expected: %v", name, r.Err, item.expected)
			continue
		}
		actual := top(r)
		if actual.IsInteger() {
			t.Errorf("Case: %s; Actual: Integer %v; Expected: Float", name, actual)
		}
		if math.Abs(actual.Float()-item.expected) > epsilon*math.Max(1, math.Abs(item.expected)) {
			t.Errorf("Case: %s; Actual: %v; Expected: %v", name, actual.Float(), item.expected)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	list := map[string]struct {
		atoms    []string
		expected ErrorKind
	}{
		"divide by zero":          {[]string{"1", "0", "/"}, DivisionByZero},
		"divide by float zero":    {[]string{"1", "0.0", "/"}, DivisionByZero},
		"floor divide by zero":    {[]string{"1", "0", "÷"}, DivisionByZero},
		"modulus by zero":         {[]string{"1", "0", "%"}, DivisionByZero},
		"reciprocal of zero":      {[]string{"0", "1/x"}, DivisionByZero},
		"zero to negative power":  {[]string{"0", "-1", "^"}, DivisionByZero},
		"zeroth root":             {[]string{"8", "0", "n√"}, DivisionByZero},
		"sqrt negative":           {[]string{"-4", "√"}, DomainError},
		"ln zero":                 {[]string{"0", "ln"}, DomainError},
		"log negative":            {[]string{"-1", "log"}, DomainError},
		"lg2 zero":                {[]string{"0", "lg2"}, DomainError},
		"factorial negative":      {[]string{"-1", "!"}, DomainError},
		"factorial negative flt":  {[]string{"-2.0", "!"}, DomainError},
		"root of negative":        {[]string{"-8", "3", "n√"}, DomainError},
		"fractional power of neg": {[]string{"-8", "0.5", "^"}, DomainError},
		"asin out of range":       {[]string{"1.5", "asin"}, DomainError},
		"acos out of range":       {[]string{"-2", "acos"}, DomainError},
		"acosh below one":         {[]string{"0", "acosh"}, DomainError},
		"atanh at one":            {[]string{"-1", "atanh"}, DomainError},
		"binomial negative":       {[]string{"-1", "2", "nCk"}, DomainError},
		"binomial float":          {[]string{"5", "2.0", "nCk"}, TypeError},
		"binomial overflow":       {[]string{"67", "33", "nCk"}, Overflow},
		"add overflow":            {[]string{"9223372036854775807", "1", "+"}, Overflow},
		"add underflow":           {[]string{"-9223372036854775808", "-1", "+"}, Overflow},
		"subtract overflow":       {[]string{"-9223372036854775808", "1", "−"}, Overflow},
		"multiply overflow":       {[]string{"4294967296", "4294967296", "×"}, Overflow},
		"multiply min by -1":      {[]string{"-9223372036854775808", "-1", "×"}, Overflow},
		"divide min by -1":        {[]string{"-9223372036854775808", "-1", "/"}, Overflow},
		"floor divide min by -1":  {[]string{"-9223372036854775808", "-1", "÷"}, Overflow},
		"power overflow":          {[]string{"10", "19", "^"}, Overflow},
		"float power overflow":    {[]string{"10.0", "400", "^"}, Overflow},
		"float multiply overflow": {[]string{"1.0e200", "1.0e200", "×"}, Overflow},
		"factorial overflow":      {[]string{"21", "!"}, Overflow},
		"gamma overflow":          {[]string{"200.5", "!"}, Overflow},
		"exp2 overflow":           {[]string{"63", "2^x"}, Overflow},
		"square overflow":         {[]string{"3037000500", "x²"}, Overflow},
		"truncate huge":           {[]string{"1.0e19", "="}, Overflow},
		"floor divide huge":       {[]string{"1.0e300", "1", "÷"}, Overflow},
		"scientific overflow":     {[]string{"1", "309", "E"}, Overflow},
		"cosh overflow":           {[]string{"1000", "cosh"}, Overflow},
	}
	for name, item := range list {
		r := evaluateAtoms(t, item.atoms...)
		if actual := r.Kind(); actual != item.expected {
			t.Errorf("Case: %s; Actual: %s (%v); Expected: %s", name, actual, r.Err, item.expected)
		}
	}
}

func TestEvaluateNaNPropagates(t *testing.T) {
	// NaN operands are not a domain violation of their own.
	n, err := add(Float64(math.NaN()), Int(1))
	if err != nil {
		t.Fatalf("Actual: %s; Expected: %v", err, nil)
	}
	if !math.IsNaN(n.Float()) {
		t.Errorf("Actual: %v; Expected: NaN", n)
	}
	n, err = sqrt(Float64(math.Inf(1)))
	if err != nil || !math.IsInf(n.Float(), 1) {
		t.Errorf("Actual: %v, %v; Expected: +Inf", n, err)
	}
}

func TestCheckedIntegerArithmetic(t *testing.T) {
	if _, ok := addInt(math.MaxInt64, 0); !ok {
		t.Errorf("MaxInt64 + 0 reported overflow")
	}
	if _, ok := subInt(0, math.MinInt64); ok {
		t.Errorf("0 - MinInt64 did not report overflow")
	}
	if v, ok := subInt(-1, math.MaxInt64); !ok || v != math.MinInt64 {
		t.Errorf("Actual: %d %v; Expected: %d true", v, ok, int64(math.MinInt64))
	}
	if v, ok := mulInt(-1, math.MaxInt64); !ok || v != -math.MaxInt64 {
		t.Errorf("Actual: %d %v; Expected: %d true", v, ok, int64(-math.MaxInt64))
	}
	if v, ok := powInt(-2, 63); !ok || v != math.MinInt64 {
		t.Errorf("Actual: %d %v; Expected: %d true", v, ok, int64(math.MinInt64))
	}
	if _, ok := powInt(2, 63); ok {
		t.Errorf("2^63 did not report overflow")
	}
	if v, ok := powInt(1, 1<<62); !ok || v != 1 {
		t.Errorf("Actual: %d %v; Expected: 1 true", v, ok)
	}
}
