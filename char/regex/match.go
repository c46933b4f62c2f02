package regex

import (
	"fmt"

	"github.com/davewathen/precursor"
	"github.com/davewathen/precursor/char"
)

// Match is a successful, anchored match of a Regex against a cursor.
type Match struct {
	start char.CharCursor
	end   char.CharCursor
}

// Text returns the matched text.
func (m Match) Text() (string, error) { return m.start.Between(m.end) }

// End returns a cursor positioned just past the matched text, suitable
// for resuming a further match or scan from where this one left off.
func (m Match) End() char.CharCursor { return m.end }

// Span returns the location span of the match, or nil if the match
// was empty (matched zero characters).
func (m Match) Span() *Span {
	start, end := m.start.Location(), m.end.Location()
	if start.CharOffset == end.CharOffset {
		return nil
	}
	return &Span{Start: start, End: end}
}

// Span describes the location range a non-empty match occupies.
type Span struct {
	Start char.Location
	End   char.Location // one past the last matched character
}

// String renders the span the way the original engine does: a single
// "[line:col]" when the match spans one character, "[line:col-col]"
// when it spans several characters on one line, and an explicit
// two-location range for a match crossing a line boundary.
func (s Span) String() string {
	if s.Start.LineNumber == s.End.LineNumber {
		lastCol := s.End.ColumnNumber - 1
		if lastCol == s.Start.ColumnNumber {
			return fmt.Sprintf("[%d:%d]", s.Start.LineNumber, s.Start.ColumnNumber)
		}
		return fmt.Sprintf("[%d:%d-%d]", s.Start.LineNumber, s.Start.ColumnNumber, lastCol)
	}
	return fmt.Sprintf("[%d:%d]-[%d:%d]", s.Start.LineNumber, s.Start.ColumnNumber, s.End.LineNumber, s.End.ColumnNumber)
}

type frame struct {
	stateID int
	cursor  char.CharCursor
}

// Match attempts to match re against cursor, anchored at cursor's
// current position. It explores alternatives depth-first in the order
// they were written, backtracking to the next untried branch whenever
// one dies, and returns the first successful path found, mirroring a
// traditional backtracking engine rather than a leftmost-longest one.
func (re *Regex) Match(cursorIn char.CharCursor) (*Match, error) {
	stack := []frame{{0, cursorIn.Clone()}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := re.states[top.stateID]

		switch st.kind {
		case stateAlternation:
			options := re.alternatives[st.altID]
			for i := len(options) - 1; i >= 0; i-- {
				stack = append(stack, frame{options[i], top.cursor.Clone()})
			}

		case stateChar:
			tok, err := top.cursor.Token()
			if err != nil {
				return nil, precursor.WrapError(precursor.RegexCursor, "reading token", err)
			}
			if tok.Kind == char.TokenChar && tok.Char == st.ch {
				next := top.cursor.Clone()
				if err := next.Advance(); err != nil {
					return nil, precursor.WrapError(precursor.RegexCursor, "advancing", err)
				}
				stack = append(stack, frame{st.next, next})
			}

		case stateClass:
			tok, err := top.cursor.Token()
			if err != nil {
				return nil, precursor.WrapError(precursor.RegexCursor, "reading token", err)
			}
			if tok.Kind == char.TokenChar && re.classes[st.classID].includes(tok.Char) {
				next := top.cursor.Clone()
				if err := next.Advance(); err != nil {
					return nil, precursor.WrapError(precursor.RegexCursor, "advancing", err)
				}
				stack = append(stack, frame{st.next, next})
			}

		case stateNoOp:
			stack = append(stack, frame{st.next, top.cursor})

		case stateTerminal:
			return &Match{start: cursorIn.Clone(), end: top.cursor}, nil
		}
	}
	return nil, nil
}
