// Package lines implements a line-oriented reader over a
// char.CharCursor, splitting on whatever line-ending policy the
// cursor itself was configured with.
package lines

import (
	"io"

	"github.com/davewathen/precursor/char"
	"github.com/davewathen/precursor/char/utf8"
	"github.com/davewathen/precursor/flatdata"
)

const byteOrderMark = rune(0xFEFF)

// Line is one line read from a LineReader.
type Line struct {
	Text       string
	LineNumber int
}

// LineReader splits a char.CharCursor into lines according to its
// configured char.LineEndings policy. Because the cursor itself
// already recognizes and can consume a terminator (however many runes
// it spans) as a single token, LineReader's job reduces to scanning
// ahead to the next terminator-or-end, capturing the text behind it,
// and advancing past the terminator.
type LineReader struct {
	cursor               char.CharCursor
	nextLineNumber       int
	pendingTrailingBlank bool
}

// NewLineReader creates a LineReader over cursor, numbering lines from 1.
func NewLineReader(cursor char.CharCursor) *LineReader {
	return &LineReader{cursor: cursor, nextLineNumber: 1}
}

// NewReader is a convenience constructor wrapping a streaming
// flatdata.Open'd cursor and a Utf8CharCursor configured with le, so
// the common case of reading lines straight from an io.Reader needs no
// manual cursor wiring. skipBOM, if true, advances past a leading
// U+FEFF before the first line is read.
func NewReader(r io.Reader, le char.LineEndings, blockSize, capacity int, skipBOM bool) (*LineReader, error) {
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
	return NewLineReader(cursor), nil
}

// ReadLine returns the next line, or nil if the resource is
// exhausted. A resource ending exactly on a terminator (with no
// trailing content after it) yields one final empty line, matching
// the common expectation that a file ending in a newline has that
// many lines, not one fewer.
func (r *LineReader) ReadLine() (*Line, error) {
	tok, err := r.cursor.Token()
	if err != nil {
		return nil, err
	}

	if tok.Kind == char.TokenEndOfData {
		if r.pendingTrailingBlank {
			r.pendingTrailingBlank = false
			return r.emit("")
		}
		return nil, nil
	}

	ahead := r.cursor.Clone()
	for {
		atok, err := ahead.Token()
		if err != nil {
			return nil, err
		}
		if atok.Kind != char.TokenChar {
			break
		}
		if err := ahead.Advance(); err != nil {
			return nil, err
		}
	}

	text, err := r.cursor.Between(ahead)
	if err != nil {
		return nil, err
	}
	if err := r.cursor.AdvanceTo(ahead); err != nil {
		return nil, err
	}
	if err := r.consumeEndOfLine(); err != nil {
		return nil, err
	}
	return r.emit(text)
}

func (r *LineReader) emit(text string) (*Line, error) {
	line := &Line{Text: text, LineNumber: r.nextLineNumber}
	r.nextLineNumber++
	return line, nil
}

func (r *LineReader) consumeEndOfLine() error {
	tok, err := r.cursor.Token()
	if err != nil {
		return err
	}
	if tok.Kind == char.TokenEndOfLine {
		if err := r.cursor.Advance(); err != nil {
			return err
		}
		r.pendingTrailingBlank = true
		return nil
	}
	r.pendingTrailingBlank = false
	return nil
}
