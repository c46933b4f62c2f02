// Package utf8 provides Utf8CharCursor, a char.CharCursor that decodes
// UTF-8 off an arbitrary precursor.ByteCursor while tracking line and
// column location according to a char.LineEndings policy.
package utf8

import (
	"github.com/davewathen/precursor"
	"github.com/davewathen/precursor/char"
	stringishutf8 "github.com/davewathen/precursor/internal/stringish/utf8"
)

var invalidUTF8 = precursor.NewError(precursor.InvalidData, "invalid UTF-8 encoding")
var invalidUTF8EOD = precursor.NewError(precursor.InvalidData, "invalid UTF-8 encoding (unexpected end of data)")

// Utf8CharCursor is a char.CharCursor over UTF-8 encoded bytes.
type Utf8CharCursor struct {
	bytes precursor.ByteCursor
	le    char.LineEndings

	lineNumber   int
	columnNumber int
	charOffset   int
}

// New creates a Utf8CharCursor over bytes, positioned at the first
// character (or the end of data if bytes is empty), recognizing line
// endings according to le.
func New(bytes precursor.ByteCursor, le char.LineEndings) *Utf8CharCursor {
	return &Utf8CharCursor{bytes: bytes, le: le, lineNumber: 1, columnNumber: 1}
}

// CloneTyped returns an independent cursor at the same position,
// preserving the concrete *Utf8CharCursor type.
func (c *Utf8CharCursor) CloneTyped() *Utf8CharCursor {
	clone := *c
	clone.bytes = c.bytes.Clone()
	return &clone
}

// Clone implements char.CharCursor.
func (c *Utf8CharCursor) Clone() char.CharCursor { return c.CloneTyped() }

// decodeRune decodes the single character at cursor, returning the
// rune and a fresh cursor advanced past it. It does not mutate cursor.
// It reads up to a full UTF-8 sequence's worth of bytes ahead and
// hands them to the shared stringish-generic decoder, which reports
// back exactly how many of them the rune actually consumed.
func decodeRune(cursor precursor.ByteCursor) (r rune, next precursor.ByteCursor, err error) {
	tok := cursor.Token()
	if tok.IsEndOfData {
		return 0, nil, precursor.ErrCannotAdvance
	}

	lookahead := cursor.Clone()
	if _, err := lookahead.AdvanceMany(stringishutf8.UTFMax); err != nil {
		return 0, nil, err
	}
	raw, err := cursor.Between(lookahead)
	if err != nil {
		return 0, nil, err
	}

	decoded, size := stringishutf8.DecodeRune(raw)
	if decoded == stringishutf8.RuneError && size <= 1 {
		if len(raw) < stringishutf8.UTFMax {
			return 0, nil, invalidUTF8EOD
		}
		return 0, nil, invalidUTF8
	}

	end := cursor.Clone()
	if _, err := end.AdvanceMany(size); err != nil {
		return 0, nil, err
	}
	return decoded, end, nil
}

type classified struct {
	isEndOfLine bool
	eol         char.EndOfLine
	r           rune
	runes       int // number of source runes this token consumes
}

// classifyAt determines the token starting at cursor under policy le.
func classifyAt(cursor precursor.ByteCursor, le char.LineEndings) (classified, error) {
	r, next, err := decodeRune(cursor)
	if err != nil {
		return classified{}, err
	}

	switch le.Kind() {
	case char.KindNone:
		return classified{r: r, runes: 1}, nil

	case char.KindSmart:
		switch r {
		case '\n':
			return classified{isEndOfLine: true, eol: char.EndOfLineLF, runes: 1}, nil
		case '\r':
			if next.Token().IsEndOfData {
				return classified{isEndOfLine: true, eol: char.EndOfLineCR, runes: 1}, nil
			}
			r2, _, err := decodeRune(next)
			if err != nil {
				return classified{}, err
			}
			if r2 == '\n' {
				return classified{isEndOfLine: true, eol: char.EndOfLineCRLF, runes: 2}, nil
			}
			return classified{isEndOfLine: true, eol: char.EndOfLineCR, runes: 1}, nil
		default:
			return classified{r: r, runes: 1}, nil
		}

	case char.KindChar:
		if r == le.A() {
			eol := char.EndOfLineOther
			switch r {
			case '\n':
				eol = char.EndOfLineLF
			case '\r':
				eol = char.EndOfLineCR
			}
			return classified{isEndOfLine: true, eol: eol, runes: 1}, nil
		}
		return classified{r: r, runes: 1}, nil

	case char.KindTwoChar:
		if r == le.A() {
			if !next.Token().IsEndOfData {
				r2, _, err := decodeRune(next)
				if err != nil {
					return classified{}, err
				}
				if r2 == le.B() {
					eol := char.EndOfLineOther
					if le.A() == '\r' && le.B() == '\n' {
						eol = char.EndOfLineCRLF
					}
					return classified{isEndOfLine: true, eol: eol, runes: 2}, nil
				}
			}
		}
		return classified{r: r, runes: 1}, nil
	}
	return classified{r: r, runes: 1}, nil
}

func (c *Utf8CharCursor) classification() (classified, error) {
	return classifyAt(c.bytes, c.le)
}

// Token returns the token at the cursor's current position.
func (c *Utf8CharCursor) Token() (char.CharToken, error) {
	if c.bytes.Token().IsEndOfData {
		return char.EndOfDataToken, nil
	}
	cl, err := c.classification()
	if err != nil {
		return char.CharToken{}, err
	}
	if cl.isEndOfLine {
		return char.CharToken{Kind: char.TokenEndOfLine, EndOfLine: cl.eol}, nil
	}
	return char.CharToken{Kind: char.TokenChar, Char: cl.r}, nil
}

// Advance moves the cursor forward by one character, or (for a
// multi-rune terminator, such as Smart's CRLF or a TwoChar policy)
// consumes the whole terminator as a single position step, updating
// line and column bookkeeping.
func (c *Utf8CharCursor) Advance() error {
	if c.bytes.Token().IsEndOfData {
		return precursor.ErrCannotAdvance
	}
	cl, err := c.classification()
	if err != nil {
		return err
	}

	for i := 0; i < cl.runes; i++ {
		_, next, err := decodeRune(c.bytes)
		if err != nil {
			return err
		}
		if err := c.bytes.AdvanceTo(next); err != nil {
			return err
		}
		c.charOffset++
	}

	if cl.isEndOfLine {
		c.lineNumber++
		c.columnNumber = 1
	} else {
		c.columnNumber++
	}
	return nil
}

// AdvanceMany moves the cursor forward by up to howMany characters.
// Fails with CannotAdvance if the cursor is already at the end of
// data, even when howMany is 0.
func (c *Utf8CharCursor) AdvanceMany(howMany int) (int, error) {
	if c.bytes.Token().IsEndOfData {
		return 0, precursor.ErrCannotAdvance
	}
	advanced := 0
	for i := 0; i < howMany; i++ {
		if err := c.Advance(); err != nil {
			return advanced, err
		}
		advanced++
		if c.bytes.Token().IsEndOfData {
			break
		}
	}
	return advanced, nil
}

// AdvanceTo advances this cursor forward to other's position. other
// must be a *Utf8CharCursor over the same resource.
func (c *Utf8CharCursor) AdvanceTo(otherCursor char.CharCursor) error {
	other, ok := otherCursor.(*Utf8CharCursor)
	if !ok {
		return precursor.ErrIncompatible
	}
	for {
		cmp, comparable := compareByteCursors(c.bytes, other.bytes)
		if !comparable {
			return precursor.ErrIncompatible
		}
		if cmp == 0 {
			return nil
		}
		if cmp > 0 {
			return precursor.ErrCannotAdvance
		}
		if err := c.Advance(); err != nil {
			return err
		}
	}
}

// compareByteCursors orders a and b by byte index if they are over the
// same resource (detected by attempting Between, which fails with
// Incompatible across distinct resources).
func compareByteCursors(a, b precursor.ByteCursor) (cmp int, comparable bool) {
	if _, err := a.Between(b); err != nil {
		return 0, false
	}
	ai, bi := a.Index(), b.Index()
	switch {
	case ai < bi:
		return -1, true
	case ai > bi:
		return 1, true
	default:
		return 0, true
	}
}

// Location returns the cursor's current line/column position.
func (c *Utf8CharCursor) Location() char.Location {
	return char.NewLocation(c.charOffset, c.lineNumber, c.columnNumber)
}

// TokenBytes returns the raw bytes backing the current token.
func (c *Utf8CharCursor) TokenBytes() ([]byte, error) {
	if c.bytes.Token().IsEndOfData {
		return []byte{}, nil
	}
	cl, err := c.classification()
	if err != nil {
		return nil, err
	}
	end := c.bytes.Clone()
	for i := 0; i < cl.runes; i++ {
		_, next, err := decodeRune(end)
		if err != nil {
			return nil, err
		}
		if err := end.AdvanceTo(next); err != nil {
			return nil, err
		}
	}
	return c.bytes.Between(end)
}

// ByteIndex returns the zero-based byte offset of the cursor's
// position in the underlying byte resource.
func (c *Utf8CharCursor) ByteIndex() int { return c.bytes.Index() }

// Between returns the text spanning from the lower of c and other up
// to (not including) the higher. other must be a *Utf8CharCursor over
// the same resource.
func (c *Utf8CharCursor) Between(otherCursor char.CharCursor) (string, error) {
	other, ok := otherCursor.(*Utf8CharCursor)
	if !ok {
		return "", precursor.ErrIncompatible
	}
	raw, err := c.bytes.Between(other.bytes)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

