package rpncalc

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits one raw input atom into the tokens it stands for. An
// atom that is a registered operator symbol, or that does not end in one,
// is returned as a single token. An atom consisting of a literal followed
// by an operator symbol, typed without a separator, is split into the
// literal and the operator, in that order. When several symbols are
// suffixes of the atom the longest one wins.
//
//	rpncalc.Tokenize("12")      // ["12"]
//	rpncalc.Tokenize("sin")     // ["sin"]
//	rpncalc.Tokenize("0.5asin") // ["0.5", "asin"]
//
// The atom is NFC normalized first, so input arriving in decomposed form
// compares equal to the registered symbols.
func Tokenize(raw string) []string {
	raw = norm.NFC.String(raw)
	if _, ok := operatorIndex[raw]; ok {
		return []string{raw}
	}
	for _, symbol := range bySuffixLength {
		if len(raw) > len(symbol) && strings.HasSuffix(raw, symbol) {
			return []string{raw[:len(raw)-len(symbol)], symbol}
		}
	}
	return []string{raw}
}
