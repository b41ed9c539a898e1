package expr

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s to NFC and applies Unicode case folding.
//
// Fold makes "Wood", "WOOD" and "wood" compare equal, and likewise
// precomposed and decomposed accents. cases.Caser is stateful, so a fresh one
// is created per call; StaticTerm caches its folded text to keep this off the
// needle side of a comparison.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
