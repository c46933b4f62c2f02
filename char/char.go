// Package char defines the character-level cursor contract: a
// CharCursor walks decoded characters rather than raw bytes, tracking
// line and column location and recognizing line endings according to
// a configurable LineEndings policy.
package char

import "fmt"

// LineEndingsKind discriminates the variants of a LineEndings policy.
type LineEndingsKind int

const (
	// KindNone means line endings are not recognized at all; the
	// resource is treated as a single line and every character,
	// including any newline characters it contains, is a plain Char.
	KindNone LineEndingsKind = iota
	// KindSmart recognizes any of LF, CRLF, or CR.
	KindSmart
	// KindChar recognizes a single configured rune.
	KindChar
	// KindTwoChar recognizes a configured two-rune sequence.
	KindTwoChar
)

// LineEndings describes how a CharCursor recognizes the end of a line
// within the resource it walks.
type LineEndings struct {
	kind LineEndingsKind
	a, b rune
}

// Kind reports which variant of line-ending recognition this policy
// selects.
func (le LineEndings) Kind() LineEndingsKind { return le.kind }

// A returns the first (or only) configured terminator rune; it is only
// meaningful for KindChar and KindTwoChar policies.
func (le LineEndings) A() rune { return le.a }

// B returns the second configured terminator rune; it is only
// meaningful for a KindTwoChar policy.
func (le LineEndings) B() rune { return le.b }

// None treats the resource as a single line; no character is ever
// reported as an end-of-line token.
var None = LineEndings{kind: KindNone}

// Smart recognizes LF ("\n"), CRLF ("\r\n"), and CR ("\r"), in that
// preference order at a given position (CRLF is checked before a bare
// CR). This is the recommended default when the origin of the line
// endings is not known in advance.
var Smart = LineEndings{kind: KindSmart}

// LF recognizes a single line feed character as the line ending.
var LF = CharLineEnding('\n')

// CR recognizes a single carriage return character as the line ending.
var CR = CharLineEnding('\r')

// CRLF recognizes the two-character carriage-return/line-feed sequence
// as the line ending.
var CRLF = TwoCharLineEnding('\r', '\n')

// CharLineEnding recognizes a single configured rune as the line
// ending.
func CharLineEnding(r rune) LineEndings {
	return LineEndings{kind: KindChar, a: r}
}

// TwoCharLineEnding recognizes a configured two-rune sequence as the
// line ending.
func TwoCharLineEnding(first, second rune) LineEndings {
	return LineEndings{kind: KindTwoChar, a: first, b: second}
}

// Location describes a position within a character resource: the
// zero-based character offset from the start of the resource, and the
// corresponding one-based line and column number.
type Location struct {
	CharOffset   int
	LineNumber   int
	ColumnNumber int
}

// NewLocation builds a Location.
func NewLocation(charOffset, lineNumber, columnNumber int) Location {
	return Location{CharOffset: charOffset, LineNumber: lineNumber, ColumnNumber: columnNumber}
}

// String renders the location as "[line:column]".
func (l Location) String() string {
	return fmt.Sprintf("[%d:%d]", l.LineNumber, l.ColumnNumber)
}

// EndOfLine identifies which concrete line-ending sequence a
// CharToken's EndOfLine variant matched.
type EndOfLine int

const (
	EndOfLineLF EndOfLine = iota
	EndOfLineCRLF
	EndOfLineCR
	EndOfLineOther
)

func (e EndOfLine) String() string {
	switch e {
	case EndOfLineLF:
		return "LF"
	case EndOfLineCRLF:
		return "CRLF"
	case EndOfLineCR:
		return "CR"
	default:
		return "Other"
	}
}

// TokenKind discriminates the variants of a CharToken.
type TokenKind int

const (
	TokenChar TokenKind = iota
	TokenEndOfLine
	TokenEndOfData
)

// CharToken is the value a CharCursor currently points at.
type CharToken struct {
	Kind      TokenKind
	Char      rune      // meaningful when Kind == TokenChar
	EndOfLine EndOfLine // meaningful when Kind == TokenEndOfLine
}

// EndOfDataToken is the CharToken reported once a cursor has no more
// characters to offer.
var EndOfDataToken = CharToken{Kind: TokenEndOfData}

// CharCursor represents a character position in some resource backed by
// a precursor.ByteCursor. At creation the cursor points to the first
// character, or to the end of data if the resource is empty. Advancing
// moves it to the next character, threading the Location and any
// configured LineEndings recognition through each move.
type CharCursor interface {
	// Clone returns an independent cursor at the same position over
	// the same resource.
	Clone() CharCursor

	// Advance moves the cursor forward by one character. Returns
	// CannotAdvance if the cursor is already at the end of data, or
	// InvalidData if the resource contains malformed character data.
	Advance() error

	// AdvanceMany moves the cursor forward by up to howMany
	// characters, returning the number actually advanced. Fails with
	// CannotAdvance if the cursor is already at the end of data, even
	// when howMany is 0.
	AdvanceMany(howMany int) (int, error)

	// AdvanceTo advances this cursor forward to other's position.
	AdvanceTo(other CharCursor) error

	// Location returns the location represented by this cursor.
	Location() Location

	// Token returns the token this cursor currently represents.
	Token() (CharToken, error)

	// TokenBytes returns the raw bytes backing the current token.
	TokenBytes() ([]byte, error)

	// ByteIndex returns the zero-based byte offset of this cursor's
	// position in the underlying byte resource.
	ByteIndex() int

	// Between returns the text spanning from the lower of this cursor
	// and other up to (not including) the higher.
	Between(other CharCursor) (string, error)
}
