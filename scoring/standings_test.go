package scoring

import (
	"testing"

	"github.com/Dosada05/tennis-system/models"
)

func participant(id int) *models.Participant {
	return &models.Participant{ID: id, CategoryID: 1}
}

func completedMatch(p1, p2, winner int, sets [3]models.SetScore) *models.Match {
	return &models.Match{
		CategoryID:     1,
		Participant1ID: p1,
		Participant2ID: p2,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusCompleted,
		WinnerID:       &winner,
		Set1:           sets[0],
		Set2:           sets[1],
		Set3:           sets[2],
	}
}

func TestComputeStandings(t *testing.T) {
	participants := []*models.Participant{participant(1), participant(2), participant(3)}

	matches := []*models.Match{
		// 1 обыгрывает 2 всухую: 1 получает 2 очка.
		completedMatch(1, 2, 1, [3]models.SetScore{set(6, 4), set(6, 2)}),
		// 3 обыгрывает 1 в трёх сетах: 3 получает 2 очка, 1 — очко за взятый сет.
		completedMatch(3, 1, 3, [3]models.SetScore{set(6, 4), set(3, 6), setTB(6, 6, 10, 8)}),
		// Незавершённый матч в таблицу не входит.
		{
			CategoryID:     1,
			Participant1ID: 2,
			Participant2ID: 3,
			Round:          models.RoundGroup,
			Status:         models.MatchStatusPending,
			Set1:           set(6, 0),
		},
	}

	rows := ComputeStandings(participants, matches)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	byID := make(map[int]StandingsRow, len(rows))
	for _, row := range rows {
		byID[row.Participant.ID] = row
	}

	if row := byID[1]; row.Played != 2 || row.Wins != 1 || row.Losses != 1 || row.Points != 3 {
		t.Errorf("participant 1: got %+v", row)
	}
	if row := byID[2]; row.Played != 1 || row.Wins != 0 || row.Losses != 1 || row.Points != 0 {
		t.Errorf("participant 2: got %+v", row)
	}
	if row := byID[3]; row.Played != 1 || row.Wins != 1 || row.Losses != 0 || row.Points != 2 {
		t.Errorf("participant 3: got %+v", row)
	}

	// Сортировка: очки по убыванию, при равенстве — победы по убыванию.
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Points < cur.Points {
			t.Errorf("rows out of order by points at %d: %d < %d", i, prev.Points, cur.Points)
		}
		if prev.Points == cur.Points && prev.Wins < cur.Wins {
			t.Errorf("rows out of order by wins at %d", i)
		}
	}

	// Очки не могут превышать три за матч.
	for _, row := range rows {
		if row.Points > 3*row.Played {
			t.Errorf("participant %d has %d points over %d matches", row.Participant.ID, row.Points, row.Played)
		}
	}
}

// При полном равенстве сохраняется входной порядок участников.
func TestComputeStandingsStableTies(t *testing.T) {
	participants := []*models.Participant{participant(10), participant(20), participant(30)}

	rows := ComputeStandings(participants, nil)
	for i, wantID := range []int{10, 20, 30} {
		if rows[i].Participant.ID != wantID {
			t.Errorf("row %d: got participant %d, want %d", i, rows[i].Participant.ID, wantID)
		}
	}
}

func TestRankByWins(t *testing.T) {
	participants := []*models.Participant{participant(1), participant(2), participant(3), participant(4)}

	winner := func(id int) *models.Match {
		return &models.Match{
			Round:    models.RoundGroup,
			Status:   models.MatchStatusCompleted,
			WinnerID: &id,
			// Involves здесь не важен: ранжирование считает только победы.
			Participant1ID: id,
		}
	}

	matches := []*models.Match{
		winner(3), winner(3), winner(3),
		winner(1), winner(1),
		winner(4),
	}

	ranked := RankByWins(participants, matches)
	wantOrder := []int{3, 1, 4, 2}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("rank %d: got participant %d, want %d", i+1, ranked[i].ID, want)
		}
	}

	// Победы чужих участников (не из списка) игнорируются.
	outsider := 99
	matches = append(matches, &models.Match{Status: models.MatchStatusCompleted, WinnerID: &outsider})
	ranked = RankByWins(participants, matches)
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("after outsider win, rank %d: got %d, want %d", i+1, ranked[i].ID, want)
		}
	}
}
