// Package regex implements a small backtracking matcher for a regular
// expression dialect over char.CharCursor: literals, '.', classes
// ([...] with negation and ranges, \d \w \s and their negations),
// alternation, grouping, and the quantifiers * + ? and {m}, {m,},
// {m,n}, each either greedy or (with a trailing ?) lazy.
//
// There is no regex-syntax-producing library in this module's
// dependency set, so patterns are parsed by a small hand-written
// parser (parse.go) into a node tree, which is then compiled
// (compile.go) into a flat table of states that a stack-based
// backtracking matcher (match.go) walks directly against a
// char.CharCursor. A Regex always matches anchored at the cursor's
// current position; callers who want a search anywhere in a resource
// advance the cursor themselves between attempts.
package regex

import (
	"fmt"

	"github.com/davewathen/precursor"
)

// stateKind discriminates the variants of a compiled state.
type stateKind int

const (
	stateChar stateKind = iota
	stateClass
	stateAlternation
	stateNoOp
	stateTerminal
)

// regexState is one node in the compiled state graph. Fields are
// meaningful according to kind, mirroring the shape of the original
// compiler's State enum.
type regexState struct {
	kind    stateKind
	ch      rune // stateChar
	classID int  // stateClass
	altID   int  // stateAlternation
	next    int  // stateChar, stateClass, stateNoOp
}

// Regex is a compiled pattern, ready to match against a char.CharCursor.
type Regex struct {
	classes      []classNode
	alternatives [][]int
	states       []regexState
}

// New parses and compiles pattern.
func New(pattern string) (*Regex, error) {
	n, err := parse(pattern)
	if err != nil {
		if perr, ok := err.(*precursor.Error); ok {
			return nil, perr
		}
		return nil, precursor.WrapError(precursor.RegexSyntax, "invalid pattern", err)
	}
	re := &Regex{}
	if err := re.addStates(n); err != nil {
		return nil, err
	}
	re.states = append(re.states, regexState{kind: stateTerminal})
	return re, nil
}

func (re *Regex) lastStateID() int     { return re.relativeStateID(0) }
func (re *Regex) nextStateID() int     { return re.relativeStateID(1) }
func (re *Regex) relativeStateID(offset int) int { return len(re.states) + offset - 1 }

// addClassIfMissing returns the id of an existing class equal to c, or
// appends c and returns its new id.
func (re *Regex) addClassIfMissing(c classNode) int {
	for i, existing := range re.classes {
		if classEqual(existing, c) {
			return i
		}
	}
	re.classes = append(re.classes, c)
	return len(re.classes) - 1
}

func classEqual(a, b classNode) bool {
	if a.negated != b.negated || len(a.ranges) != len(b.ranges) {
		return false
	}
	for i := range a.ranges {
		if a.ranges[i] != b.ranges[i] {
			return false
		}
	}
	return true
}

// anyRanges backs the '.' atom: any character other than a line feed.
var anyRanges = []charRange{{0, '\n' - 1}, {'\n' + 1, 0x10FFFF}}

func (s regexState) String() string {
	switch s.kind {
	case stateTerminal:
		return "END:"
	case stateAlternation:
		return fmt.Sprintf("ALTERNATIVES: Alt-%d", s.altID)
	case stateChar:
		return fmt.Sprintf("CHAR: %d if '%s'", s.next, escapeForDisplay(s.ch))
	case stateClass:
		return fmt.Sprintf("CLASS: %d if in Class-%d", s.next, s.classID)
	default:
		return fmt.Sprintf("NO_OP: %d", s.next)
	}
}

// String renders the compiled state table, mostly useful when
// debugging a pattern that isn't matching as expected.
func (re *Regex) String() string {
	out := ""
	for i, st := range re.states {
		out += fmt.Sprintf("%04d %s\n", i, st)
	}
	return out
}
