package scoring

import (
	"sort"

	"github.com/Dosada05/tennis-system/models"
)

// StandingsRow — агрегат результатов участника внутри категории.
// Points — количество выигранных сетов по всем завершённым матчам:
// проигравший 2-1 всё равно получает очко за взятый сет.
type StandingsRow struct {
	Participant *models.Participant `json:"participant"`
	Played      int                 `json:"played"`
	Wins        int                 `json:"wins"`
	Losses      int                 `json:"losses"`
	Points      int                 `json:"points"`
}

// ComputeStandings aggregates completed matches into a ranked table.
// Sort order: points desc, then wins desc. Further ties keep the input
// (participant creation) order — no additional tie-break rule is defined.
func ComputeStandings(participants []*models.Participant, matches []*models.Match) []StandingsRow {
	rows := make([]StandingsRow, 0, len(participants))

	for _, p := range participants {
		row := StandingsRow{Participant: p}
		for _, m := range matches {
			if m.Status != models.MatchStatusCompleted || !m.Involves(p.ID) {
				continue
			}
			row.Played++
			if m.WinnerID != nil && *m.WinnerID == p.ID {
				row.Wins++
			}

			target := Winner1
			if m.Participant2ID == p.ID {
				target = Winner2
			}
			for _, s := range m.SetScores() {
				if ResolveSet(s) == target {
					row.Points++
				}
			}
		}
		row.Losses = row.Played - row.Wins
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Wins > rows[j].Wins
	})
	return rows
}

// RankByWins orders participants by group-stage wins only. This is the
// seeding order for the elimination stage; matches of other rounds must be
// filtered out by the caller. Ties keep input order.
func RankByWins(participants []*models.Participant, groupMatches []*models.Match) []*models.Participant {
	wins := make(map[int]int, len(participants))
	for _, p := range participants {
		wins[p.ID] = 0
	}
	for _, m := range groupMatches {
		if m.WinnerID == nil {
			continue
		}
		if _, ok := wins[*m.WinnerID]; ok {
			wins[*m.WinnerID]++
		}
	}

	ranked := make([]*models.Participant, len(participants))
	copy(ranked, participants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return wins[ranked[i].ID] > wins[ranked[j].ID]
	})
	return ranked
}
