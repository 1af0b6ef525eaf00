package search

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalises s for comparison: NFKC first so full-width Latin letters
// and digits ("ＴＥＮＮＩＳ", "２０２４") and half-width katakana match their
// usual forms, then Unicode full case folding.
//
// A cases.Caser is stateful, so a fresh one is created per call.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFKC.String(s))
}
