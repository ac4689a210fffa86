package rpncalc

import (
	"math"
	"strings"
	"testing"
)

func TestNumberString(t *testing.T) {
	list := map[string]struct {
		n        Number
		expected string
	}{
		"integer":          {Int(8), "8"},
		"negative integer": {Int(-42), "-42"},
		"float":            {Float64(3.5), "3.5"},
		"integral float":   {Float64(3), "3.0"},
		"large float":      {Float64(1e21), "1e+21"},
		"nan":              {Float64(math.NaN()), "NaN"},
		"inf":              {Float64(math.Inf(1)), "+Inf"},
		"neginf":           {Float64(math.Inf(-1)), "-Inf"},
	}
	for name, item := range list {
		if actual := item.n.String(); actual != item.expected {
			t.Errorf("Case: %s; Actual: %#v; Expected: %#v", name, actual, item.expected)
		}
	}
}

func TestNumberFormat(t *testing.T) {
	list := map[string]struct {
		n         Number
		precision int
		expected  string
	}{
		"pi":             {Float64(math.Pi), 10, "3.141592654"},
		"integral float": {Float64(2), 10, "2.0"},
		"exponent":       {Float64(1234567), 3, "1.23e+06"},
		"integer":        {Int(1234567), 3, "1234567"},
		"full precision": {Float64(0.1), 0, "0.1"},
	}
	for name, item := range list {
		if actual := item.n.Format(item.precision); actual != item.expected {
			t.Errorf("Case: %s; Actual: %#v; Expected: %#v", name, actual, item.expected)
		}
	}
}

func TestNumberAccessors(t *testing.T) {
	if n := Int(-3); n.Kind() != Integer || !n.IsInteger() || n.Float() != -3 || n.Sign() != -1 {
		t.Errorf("Actual: %v %s", n, n.Kind())
	}
	if n := Float64(2.75); n.Kind() != Float || n.IsInteger() || n.Int64() != 2 || n.IsIntegral() {
		t.Errorf("Actual: %v %s", n, n.Kind())
	}
	if n := Float64(4); !n.IsIntegral() || n.IsInteger() {
		t.Errorf("Actual: %v %s", n, n.Kind())
	}
	if Float64(math.Inf(1)).IsIntegral() {
		t.Errorf("infinity reported integral")
	}
	if !Float64(0).IsZero() || !Int(0).IsZero() || Float64(math.NaN()).Sign() != 0 {
		t.Errorf("zero and NaN classification")
	}
	if Int(3).Equal(Float64(3)) {
		t.Errorf("Integer 3 equal to Float 3")
	}
	if !Float64(math.NaN()).Equal(Float64(math.NaN())) {
		t.Errorf("NaN not equal to NaN")
	}
	if Integer.String() != "Integer" || Float.String() != "Float" {
		t.Errorf("Actual: %s %s", Integer, Float)
	}
}

func TestParseLiteral(t *testing.T) {
	list := map[string]struct {
		expected Number
		kind     ErrorKind
	}{
		"42":      {Int(42), NoError},
		"+7":      {Int(7), NoError},
		"-0":      {Int(0), NoError},
		"4.":      {Float64(4), NoError},
		".5":      {Float64(0.5), NoError},
		"-2.5":    {Float64(-2.5), NoError},
		"1.5e3":   {Float64(1500), NoError},
		"1e3":     {Number{}, InvalidNumberFormat},
		"0x10":    {Number{}, InvalidNumberFormat},
		"0x1.8p1": {Number{}, InvalidNumberFormat},
		"1.2.3":   {Number{}, InvalidNumberFormat},
		".":       {Number{}, InvalidNumberFormat},
		"1.0e999": {Number{}, Overflow},
		"1" + strings.Repeat("0", 19): {Number{}, Overflow},
	}
	for input, item := range list {
		actual, err := parseLiteral(input)
		if kind := KindOf(err); kind != item.kind {
			t.Errorf("Case: %s; Actual: %s; Expected: %s", input, kind, item.kind)
			continue
		}
		if err == nil && !actual.Equal(item.expected) {
			t.Errorf("Case: %s; Actual: %v; Expected: %v", input, actual, item.expected)
		}
	}
}

func TestErrorKindNames(t *testing.T) {
	for k := NoError; k <= TypeError; k++ {
		parsed, ok := ParseErrorKind(k.String())
		if !ok || parsed != k {
			t.Errorf("Case: %s; Actual: %s %v", k, parsed, ok)
		}
	}
	if _, ok := ParseErrorKind("Bogus"); ok {
		t.Errorf("Actual: ok; Expected: unknown kind")
	}
	if s := ErrorKind(99).String(); s != "ErrorKind(99)" {
		t.Errorf("Actual: %s; Expected: ErrorKind(99)", s)
	}
}
