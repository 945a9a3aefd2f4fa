// Package scoring derives set winners, match winners and standings from the
// raw per-set scores stored on a match. Everything here is a pure function:
// results must be recomputable from stored data at any time.
package scoring

import "github.com/Dosada05/tennis-system/models"

type SetWinner int

const (
	NoWinner SetWinner = iota
	Winner1
	Winner2
)

// ResolveSet determines the winner of a single set. A higher game count wins
// the set outright; with equal games the tiebreak decides, but only when both
// tiebreak scores were entered. Anything else (missing games, equal games
// without a tiebreak, equal tiebreaks) leaves the set unresolved.
func ResolveSet(s models.SetScore) SetWinner {
	if s.P1Games == nil || s.P2Games == nil {
		return NoWinner
	}
	if *s.P1Games > *s.P2Games {
		return Winner1
	}
	if *s.P2Games > *s.P1Games {
		return Winner2
	}
	if s.P1Tiebreak != nil && s.P2Tiebreak != nil {
		if *s.P1Tiebreak > *s.P2Tiebreak {
			return Winner1
		}
		if *s.P2Tiebreak > *s.P1Tiebreak {
			return Winner2
		}
	}
	return NoWinner
}
