// Package fields implements a delimited-value reader over a
// char.CharCursor: comma (or any configured single- or two-rune
// delimiter) separated values, with optional double-quoting and
// doubled-quote escaping.
package fields

import (
	"io"
	"strings"

	"github.com/davewathen/precursor"
	"github.com/davewathen/precursor/char"
	"github.com/davewathen/precursor/char/utf8"
	"github.com/davewathen/precursor/flatdata"
)

// Delimiter configures the rune or rune pair that separates values
// within a record, in the same single/two-rune shape as
// char.LineEndings.
type Delimiter struct {
	a, b    rune
	twoChar bool
}

// CharDelimiter recognizes a single configured rune as the separator.
func CharDelimiter(r rune) Delimiter { return Delimiter{a: r} }

// TwoCharDelimiter recognizes a configured two-rune sequence as the
// separator.
func TwoCharDelimiter(first, second rune) Delimiter {
	return Delimiter{a: first, b: second, twoChar: true}
}

// Comma is the conventional CSV delimiter.
var Comma = CharDelimiter(',')

// Record is one delimited row read from a DelimitedReader.
type Record struct {
	Fields     []string
	LineNumber int
}

type state int

const (
	beforeValue state = iota
	whitespaceStartOfValue
	inUnquoted
	inQuoted
	afterQuoted
	whitespaceAfterQuoted
)

// DelimitedReader drives a six-state machine over a char.CharCursor to
// collect delimiter-separated values, with optional double-quoting:
// two adjacent quotes inside a quoted value emit one literal quote,
// whitespace around a quoted value is ignored, and whitespace around
// an unquoted value is part of the value.
type DelimitedReader struct {
	cursor               char.CharCursor
	delimiter            Delimiter
	nextLineNumber       int
	pendingTrailingBlank bool
}

// NewDelimitedReader creates a DelimitedReader over cursor, splitting
// values on delimiter and numbering records from 1.
func NewDelimitedReader(cursor char.CharCursor, delimiter Delimiter) *DelimitedReader {
	return &DelimitedReader{cursor: cursor, delimiter: delimiter, nextLineNumber: 1}
}

// NewReader is a convenience constructor wrapping a streaming
// flatdata.Open'd cursor and a Utf8CharCursor configured with le.
// skipBOM, if true, advances past a leading U+FEFF before the first
// record is read.
func NewReader(r io.Reader, delimiter Delimiter, le char.LineEndings, blockSize, capacity int, skipBOM bool) (*DelimitedReader, error) {
	bytes, err := flatdata.Open(r, blockSize, capacity)
	if err != nil {
		return nil, err
	}
	cursor := utf8.New(bytes, le)
	if skipBOM {
		tok, err := cursor.Token()
		if err != nil {
			return nil, err
		}
		if tok.Kind == char.TokenChar && tok.Char == byteOrderMark {
			if err := cursor.Advance(); err != nil {
				return nil, err
			}
		}
	}
	return NewDelimitedReader(cursor, delimiter), nil
}

const byteOrderMark = rune(0xFEFF)

// ReadRecord returns the next record, or nil if the resource is
// exhausted. A resource ending exactly on a terminator yields one
// final record holding a single empty field, matching LineReader's
// trailing-blank-line behavior.
func (r *DelimitedReader) ReadRecord() (*Record, error) {
	tok, err := r.cursor.Token()
	if err != nil {
		return nil, err
	}
	if tok.Kind == char.TokenEndOfData {
		if r.pendingTrailingBlank {
			r.pendingTrailingBlank = false
			return r.emit([]string{""})
		}
		return nil, nil
	}

	var fields []string
	for {
		value, endOfRecord, consumedTerminator, err := r.readValue()
		if err != nil {
			return nil, err
		}
		fields = append(fields, value)
		if endOfRecord {
			r.pendingTrailingBlank = consumedTerminator
			break
		}
	}
	return r.emit(fields)
}

func (r *DelimitedReader) emit(fields []string) (*Record, error) {
	rec := &Record{Fields: fields, LineNumber: r.nextLineNumber}
	r.nextLineNumber++
	return rec, nil
}

// readValue runs the state machine for a single value, returning the
// collected text, whether the record ended (delimiter not found before
// an end-of-line or end-of-data), and whether an actual end-of-line
// terminator was consumed (as opposed to running off the end of data).
// Leading blanks are written to sb speculatively, since they belong to
// the value if it turns out to be unquoted; a confirmed opening quote
// discards them instead.
func (r *DelimitedReader) readValue() (value string, endOfRecord, consumedTerminator bool, err error) {
	var sb strings.Builder
	st := beforeValue

	for {
		tok, terr := r.cursor.Token()
		if terr != nil {
			return "", false, false, terr
		}

		switch st {
		case beforeValue, whitespaceStartOfValue:
			switch {
			case tok.Kind == char.TokenEndOfData:
				return sb.String(), true, false, nil
			case tok.Kind == char.TokenEndOfLine:
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				return sb.String(), true, true, nil
			case tok.Char == '"':
				sb.Reset()
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				st = inQuoted
			case isBlank(tok.Char):
				sb.WriteRune(tok.Char)
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				st = whitespaceStartOfValue
			default:
				isDelim, derr := r.matchDelimiter()
				if derr != nil {
					return "", false, false, derr
				}
				if isDelim {
					if err := r.consumeDelimiter(); err != nil {
						return "", false, false, err
					}
					return sb.String(), false, false, nil
				}
				sb.WriteRune(tok.Char)
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				st = inUnquoted
			}

		case inUnquoted:
			switch {
			case tok.Kind == char.TokenEndOfData:
				return sb.String(), true, false, nil
			case tok.Kind == char.TokenEndOfLine:
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				return sb.String(), true, true, nil
			default:
				isDelim, derr := r.matchDelimiter()
				if derr != nil {
					return "", false, false, derr
				}
				if isDelim {
					if err := r.consumeDelimiter(); err != nil {
						return "", false, false, err
					}
					return sb.String(), false, false, nil
				}
				sb.WriteRune(tok.Char)
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
			}

		case inQuoted:
			switch {
			case tok.Kind == char.TokenEndOfData:
				return "", false, false, precursor.NewError(precursor.InvalidData, "unterminated quoted value")
			case tok.Kind == char.TokenEndOfLine:
				raw, berr := r.cursor.TokenBytes()
				if berr != nil {
					return "", false, false, berr
				}
				sb.Write(raw)
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
			case tok.Char == '"':
				ahead := r.cursor.Clone()
				if err := ahead.Advance(); err != nil {
					return "", false, false, err
				}
				atok, aerr := ahead.Token()
				if aerr != nil {
					return "", false, false, aerr
				}
				if atok.Kind == char.TokenChar && atok.Char == '"' {
					sb.WriteRune('"')
					if err := r.cursor.AdvanceTo(ahead); err != nil {
						return "", false, false, err
					}
					if err := r.cursor.Advance(); err != nil {
						return "", false, false, err
					}
				} else {
					if err := r.cursor.Advance(); err != nil {
						return "", false, false, err
					}
					st = afterQuoted
				}
			default:
				sb.WriteRune(tok.Char)
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
			}

		case afterQuoted, whitespaceAfterQuoted:
			switch {
			case tok.Kind == char.TokenEndOfData:
				return sb.String(), true, false, nil
			case tok.Kind == char.TokenEndOfLine:
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				return sb.String(), true, true, nil
			case isBlank(tok.Char):
				if err := r.cursor.Advance(); err != nil {
					return "", false, false, err
				}
				st = whitespaceAfterQuoted
			default:
				isDelim, derr := r.matchDelimiter()
				if derr != nil {
					return "", false, false, derr
				}
				if isDelim {
					if err := r.consumeDelimiter(); err != nil {
						return "", false, false, err
					}
					return sb.String(), false, false, nil
				}
				return "", false, false, precursor.NewError(precursor.InvalidData, "unexpected character after closing quote")
			}
		}
	}
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// matchDelimiter reports whether the cursor currently sits at the
// start of the configured delimiter, without consuming anything.
func (r *DelimitedReader) matchDelimiter() (bool, error) {
	tok, err := r.cursor.Token()
	if err != nil {
		return false, err
	}
	if tok.Kind != char.TokenChar || tok.Char != r.delimiter.a {
		return false, nil
	}
	if !r.delimiter.twoChar {
		return true, nil
	}
	ahead := r.cursor.Clone()
	if err := ahead.Advance(); err != nil {
		return false, nil
	}
	atok, err := ahead.Token()
	if err != nil {
		return false, err
	}
	return atok.Kind == char.TokenChar && atok.Char == r.delimiter.b, nil
}

// consumeDelimiter advances the cursor past the matched delimiter.
func (r *DelimitedReader) consumeDelimiter() error {
	if err := r.cursor.Advance(); err != nil {
		return err
	}
	if r.delimiter.twoChar {
		if err := r.cursor.Advance(); err != nil {
			return err
		}
	}
	return nil
}
