// Package brackets builds the match structure of a category: the round-robin
// group stage and the fixed elimination tail (4-player semifinals, final).
// Generators here are pure; persisting the pairings is the service's job.
package brackets

import "github.com/Dosada05/tennis-system/models"

// Pairing — заготовка матча: пара участников и раунд.
type Pairing struct {
	Participant1ID int
	Participant2ID int
	Round          models.MatchRound
}

type pairKey struct {
	lo, hi int
}

func keyFor(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// GroupFixtures produces one group-round pairing per unordered participant
// pair, skipping pairs that already have a match in existing. Generation is
// idempotent by construction: running it twice over the same participants
// yields nothing new. Fewer than two participants produce no fixtures.
func GroupFixtures(participants []*models.Participant, existing []*models.Match) []Pairing {
	if len(participants) < 2 {
		return nil
	}

	seen := make(map[pairKey]bool, len(existing))
	for _, m := range existing {
		seen[keyFor(m.Participant1ID, m.Participant2ID)] = true
	}

	pairings := make([]Pairing, 0, len(participants)*(len(participants)-1)/2)
	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			k := keyFor(participants[i].ID, participants[j].ID)
			if seen[k] {
				continue
			}
			seen[k] = true
			pairings = append(pairings, Pairing{
				Participant1ID: participants[i].ID,
				Participant2ID: participants[j].ID,
				Round:          models.RoundGroup,
			})
		}
	}
	return pairings
}

// SeedSemiFinals pairs the top four of the ranked list: 1 vs 4 and 2 vs 3.
// With fewer than four ranked participants there is no elimination stage and
// no pairings are produced.
func SeedSemiFinals(ranked []*models.Participant) []Pairing {
	if len(ranked) < 4 {
		return nil
	}
	return []Pairing{
		{Participant1ID: ranked[0].ID, Participant2ID: ranked[3].ID, Round: models.RoundSemiFinal},
		{Participant1ID: ranked[1].ID, Participant2ID: ranked[2].ID, Round: models.RoundSemiFinal},
	}
}

// FinalPairing builds the final from the semifinal winners. Both semifinals
// must have produced a winner; otherwise ok is false.
func FinalPairing(semiWinners []int) (Pairing, bool) {
	if len(semiWinners) < 2 {
		return Pairing{}, false
	}
	return Pairing{
		Participant1ID: semiWinners[0],
		Participant2ID: semiWinners[1],
		Round:          models.RoundFinal,
	}, true
}
