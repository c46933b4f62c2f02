// Package filter provides predicates over the string records produced
// by flatdata/lines and flatdata/fields. A filter is a
// func(string) bool -- given a record's text, what is true about it?
package filter

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Func reports whether a record satisfies some predicate.
type Func func(string) bool

// Contains returns a filter indicating that a record contains one or
// more runes that are in one or more of the given ranges. Examples of
// ranges are things like unicode.Letter, unicode.Arabic, or
// unicode.Lower, allowing testing for a variety of character or
// script types.
func Contains(ranges ...*unicode.RangeTable) Func {
	merged := rangetable.Merge(ranges...)
	return func(record string) bool {
		return contains(record, merged)
	}
}

// Entirely returns a filter indicating that a record consists
// entirely of runes that are in one or more of the given ranges.
func Entirely(ranges ...*unicode.RangeTable) Func {
	merged := rangetable.Merge(ranges...)
	return func(record string) bool {
		return entirely(record, merged)
	}
}

// AlphaNumeric is a filter which returns only records that contain a
// Letter or Number, as defined by Unicode.
var AlphaNumeric Func = func(record string) bool {
	for _, r := range record {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Wordlike is a filter which returns only records that contain a
// Letter, Number, or Symbol, as defined by Unicode.
var Wordlike Func = func(record string) bool {
	for _, r := range record {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}

func contains(record string, ranges ...*unicode.RangeTable) bool {
	if len(record) == 0 || len(ranges) == 0 {
		return false
	}
	for _, r := range record {
		if unicode.In(r, ranges...) {
			return true
		}
	}
	return false
}

func entirely(record string, ranges ...*unicode.RangeTable) bool {
	if len(record) == 0 || len(ranges) == 0 {
		return false
	}
	for _, r := range record {
		if !unicode.In(r, ranges...) {
			return false
		}
	}
	return true
}
