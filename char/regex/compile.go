package regex

import "github.com/davewathen/precursor"

// addStates compiles n, appending the states it produces to re. Each
// state produced for ordinary sequential flow (a literal, a class, an
// empty node) targets the state that will occupy the very next slot,
// since states are otherwise emitted in the order they run; only
// alternation and repetition need to redirect flow elsewhere.
func (re *Regex) addStates(n node) error {
	switch v := n.(type) {
	case emptyNode:
		re.states = append(re.states, regexState{kind: stateNoOp, next: re.relativeStateID(2)})

	case literalNode:
		re.states = append(re.states, regexState{kind: stateChar, ch: v.ch, next: re.relativeStateID(2)})

	case classNode:
		id := re.addClassIfMissing(v)
		re.states = append(re.states, regexState{kind: stateClass, classID: id, next: re.relativeStateID(2)})

	case anyCharNode:
		id := re.addClassIfMissing(classNode{ranges: anyRanges})
		re.states = append(re.states, regexState{kind: stateClass, classID: id, next: re.relativeStateID(2)})

	case concatNode:
		for _, item := range v.items {
			if err := re.addStates(item); err != nil {
				return err
			}
		}

	case repeatNode:
		return re.addRepeatStates(v)

	case altNode:
		return re.addAltStates(v)

	default:
		return precursor.NewError(precursor.RegexUnsupported, "unrecognized pattern node")
	}
	return nil
}

func (re *Regex) addRepeatStates(v repeatNode) error {
	for i := 0; i < v.min; i++ {
		if err := re.addStates(v.sub); err != nil {
			return err
		}
	}

	if v.max != -1 {
		for i := v.min + 1; i <= v.max; i++ {
			altID := len(re.alternatives)
			re.alternatives = append(re.alternatives, make([]int, 0, 2))
			re.states = append(re.states, regexState{kind: stateAlternation, altID: altID})

			next := re.nextStateID()
			if err := re.addStates(v.sub); err != nil {
				return err
			}
			skip := re.nextStateID()

			if v.greedy {
				re.alternatives[altID] = append(re.alternatives[altID], next, skip)
			} else {
				re.alternatives[altID] = append(re.alternatives[altID], skip, next)
			}
		}
		return nil
	}

	altID := len(re.alternatives)
	re.alternatives = append(re.alternatives, make([]int, 0, 2))
	altStateID := len(re.states)
	re.states = append(re.states, regexState{kind: stateAlternation, altID: altID})

	next := re.nextStateID()
	if err := re.addStates(v.sub); err != nil {
		return err
	}
	re.states = append(re.states, regexState{kind: stateNoOp, next: altStateID})
	skip := re.nextStateID()

	if v.greedy {
		re.alternatives[altID] = append(re.alternatives[altID], next, skip)
	} else {
		re.alternatives[altID] = append(re.alternatives[altID], skip, next)
	}
	return nil
}

func (re *Regex) addAltStates(v altNode) error {
	ends := make([]int, 0, len(v.options))

	altID := len(re.alternatives)
	re.alternatives = append(re.alternatives, make([]int, 0, len(v.options)))
	re.states = append(re.states, regexState{kind: stateAlternation, altID: altID})

	for _, opt := range v.options {
		re.alternatives[altID] = append(re.alternatives[altID], re.nextStateID())
		if err := re.addStates(opt); err != nil {
			return err
		}
		ends = append(ends, re.lastStateID())
	}

	next := re.nextStateID()
	for _, end := range ends {
		if err := re.adjustStateTransition(end, next); err != nil {
			return err
		}
	}
	return nil
}

// adjustStateTransition redirects the state at id, which ends one
// alternative branch, to flow into to (the first state beyond the
// whole alternation) instead of whatever followed it sequentially.
func (re *Regex) adjustStateTransition(id, to int) error {
	switch re.states[id].kind {
	case stateChar, stateClass, stateNoOp:
		re.states[id].next = to
		return nil
	default:
		return precursor.NewError(precursor.RegexUnsupported, "alternative branch ended in a state that cannot be redirected")
	}
}
