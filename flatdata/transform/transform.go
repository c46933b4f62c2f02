// Package transform provides record-level text transforms for use
// with flatdata/lines and flatdata/fields output: case folding,
// Unicode normalization, and diacritic removal.
package transform

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Func transforms a record's text.
type Func func(string) string

// Lower transforms text to lowercase, using the golang.org/x/text/cases
// lowercase mapping for the undetermined language rather than
// strings.ToLower. It lowercases; it does not apply full case folding.
var Lower Func = func(s string) string {
	result, _, _ := transform.String(cases.Lower(language.Und), s)
	return result
}

// Upper transforms text to uppercase.
var Upper Func = func(s string) string {
	result, _, _ := transform.String(cases.Upper(language.Und), s)
	return result
}

// NFC normalizes Unicode text to the NFC form https://unicode.org/reports/tr15/#Norm_Forms
var NFC Func = norm.NFC.String

// NFD normalizes Unicode text to the NFD form https://unicode.org/reports/tr15/#Norm_Forms
var NFD Func = norm.NFD.String

// NFKC normalizes Unicode text to the NFKC form https://unicode.org/reports/tr15/#Norm_Forms
var NFKC Func = norm.NFKC.String

// NFKD normalizes Unicode text to the NFKD form https://unicode.org/reports/tr15/#Norm_Forms
var NFKD Func = norm.NFKD.String

// Diacritics 'flattens' characters with diacritics, such as accents.
// For example, café → cafe, façade → facade.
var Diacritics Func = func(s string) string {
	// https://stackoverflow.com/q/24588295
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
