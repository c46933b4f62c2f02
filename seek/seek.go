// Package seek provides forward and backward category-seeking helpers
// over a char.CharCursor, adapted from a []byte/*unicode.RangeTable
// scan into a cursor/predicate scan so it works over any CharCursor
// implementation, streaming or in-memory alike.
package seek

import "github.com/davewathen/precursor/char"

// Predicate reports whether r belongs to some category of interest.
type Predicate func(r rune) bool

// Forward clones cursor and advances it while ignore holds for the
// current character, stopping at the first character satisfying seek
// (reporting true) or the first character satisfying neither (false),
// or at the end of data (false). The original cursor is never
// modified.
func Forward(cursor char.CharCursor, ignore, seek Predicate) bool {
	c := cursor.Clone()
	for {
		tok, err := c.Token()
		if err != nil || tok.Kind != char.TokenChar {
			return false
		}
		if ignore(tok.Char) {
			if err := c.Advance(); err != nil {
				return false
			}
			continue
		}
		return seek(tok.Char)
	}
}

// Backward looks behind upTo, skipping characters satisfying ignore,
// and reports whether the nearest remaining character satisfies seek;
// it reports false when every character between fromStart and upTo
// satisfies ignore. It is typically used immediately after a match to
// look behind the match for a boundary condition; since CharCursor has
// no native "step backward" operation, Backward is driven from
// fromStart forward, keeping the verdict of the last non-ignored
// character seen before upTo's position. This means Backward's cost is
// proportional to the distance from fromStart, not from upTo — callers with a hot
// backward-scan need should instead keep a trailing cursor and use
// Forward from it.
func Backward(fromStart char.CharCursor, upTo char.CharCursor, ignore, seek Predicate) bool {
	c := fromStart.Clone()
	found := false
	for {
		cmp := compareLocations(c, upTo)
		if cmp >= 0 {
			return found
		}
		tok, err := c.Token()
		if err != nil || tok.Kind != char.TokenChar {
			return found
		}
		switch {
		case ignore(tok.Char):
			// skip
		case seek(tok.Char):
			found = true
		default:
			found = false
		}
		if err := c.Advance(); err != nil {
			return found
		}
	}
}

func compareLocations(a, b char.CharCursor) int {
	al, bl := a.Location(), b.Location()
	switch {
	case al.CharOffset < bl.CharOffset:
		return -1
	case al.CharOffset > bl.CharOffset:
		return 1
	default:
		return 0
	}
}
