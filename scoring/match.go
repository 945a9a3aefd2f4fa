package scoring

import "github.com/Dosada05/tennis-system/models"

// MatchResult — итог матча, выведенный из сетов. Winner равен NoWinner,
// пока ни один участник не взял двух сетов (матч остаётся pending).
type MatchResult struct {
	SetsWon1  int
	SetsWon2  int
	Winner    SetWinner
	Completed bool
}

// ResolveMatch counts set wins over up to three sets. First participant to
// two set wins takes the match; otherwise the match is incomplete. Calling it
// again on the same sets always yields the same result.
func ResolveMatch(sets [3]models.SetScore) MatchResult {
	var res MatchResult
	for _, s := range sets {
		switch ResolveSet(s) {
		case Winner1:
			res.SetsWon1++
		case Winner2:
			res.SetsWon2++
		}
	}

	switch {
	case res.SetsWon1 >= 2:
		res.Winner = Winner1
		res.Completed = true
	case res.SetsWon2 >= 2:
		res.Winner = Winner2
		res.Completed = true
	}
	return res
}
