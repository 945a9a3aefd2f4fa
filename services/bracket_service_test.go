package services

import (
	"context"
	"testing"

	"github.com/Dosada05/tennis-system/models"
)

func testCategory(id int) *models.Category {
	return &models.Category{ID: id, TournamentID: 1, Name: "Men's Singles", Type: models.CategorySingles}
}

func testParticipants(categoryID int, ids ...int) []*models.Participant {
	ps := make([]*models.Participant, 0, len(ids))
	for _, id := range ids {
		ps = append(ps, &models.Participant{ID: id, CategoryID: categoryID, UserID: id})
	}
	return ps
}

func newTestBracketService(matchRepo *fakeMatchRepo, participantRepo *fakeParticipantRepo, categoryRepo *fakeCategoryRepo) BracketService {
	return NewBracketService(matchRepo, participantRepo, categoryRepo, nil, testLogger())
}

func TestGenerateGroupFixtures(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	participantRepo := newFakeParticipantRepo(testParticipants(1, 1, 2, 3, 4)...)
	matchRepo := newFakeMatchRepo()
	svc := newTestBracketService(matchRepo, participantRepo, categoryRepo)

	created, err := svc.GenerateGroupFixtures(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateGroupFixtures returned error: %v", err)
	}
	if len(created) != 6 {
		t.Fatalf("created %d matches, want 6", len(created))
	}
	for _, m := range created {
		if m.Round != models.RoundGroup || m.Status != models.MatchStatusPending {
			t.Errorf("unexpected match: %+v", m)
		}
	}

	// Повторный вызов ничего не добавляет.
	again, err := svc.GenerateGroupFixtures(context.Background(), 1)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second run created %d matches, want 0", len(again))
	}
}

func TestGenerateGroupFixturesAddsNewcomerPairs(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	participantRepo := newFakeParticipantRepo(testParticipants(1, 1, 2)...)
	matchRepo := newFakeMatchRepo()
	svc := newTestBracketService(matchRepo, participantRepo, categoryRepo)

	if _, err := svc.GenerateGroupFixtures(context.Background(), 1); err != nil {
		t.Fatalf("initial run returned error: %v", err)
	}

	// Третий участник регистрируется позже: догенерируются только его пары.
	if err := participantRepo.Create(context.Background(), &models.Participant{CategoryID: 1, UserID: 3}); err != nil {
		t.Fatalf("failed to add participant: %v", err)
	}

	created, err := svc.GenerateGroupFixtures(context.Background(), 1)
	if err != nil {
		t.Fatalf("rerun returned error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d matches after newcomer, want 2", len(created))
	}
}

func TestGenerateGroupFixturesTooFewParticipants(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	participantRepo := newFakeParticipantRepo(testParticipants(1, 1)...)
	svc := newTestBracketService(newFakeMatchRepo(), participantRepo, categoryRepo)

	created, err := svc.GenerateGroupFixtures(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateGroupFixtures returned error: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d matches for a single participant, want 0", len(created))
	}
}

func completedGroupMatch(categoryID, p1, p2, winner int) *models.Match {
	return &models.Match{
		CategoryID:     categoryID,
		Participant1ID: p1,
		Participant2ID: p2,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusCompleted,
		WinnerID:       &winner,
	}
}

func TestGenerateSemiFinalsSeeding(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	participantRepo := newFakeParticipantRepo(testParticipants(1, 1, 2, 3, 4)...)

	// Победы: 3 → три, 1 → две, 4 → одна, 2 → ноль.
	matchRepo := newFakeMatchRepo(
		completedGroupMatch(1, 3, 1, 3),
		completedGroupMatch(1, 3, 2, 3),
		completedGroupMatch(1, 3, 4, 3),
		completedGroupMatch(1, 1, 2, 1),
		completedGroupMatch(1, 1, 4, 1),
		completedGroupMatch(1, 4, 2, 4),
	)
	matchRepo.next = 100

	svc := newTestBracketService(matchRepo, participantRepo, categoryRepo)

	created, err := svc.GenerateSemiFinals(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateSemiFinals returned error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d semifinals, want 2", len(created))
	}

	// Посев: первый против четвёртого, второй против третьего.
	if created[0].Participant1ID != 3 || created[0].Participant2ID != 2 {
		t.Errorf("first semifinal = %d vs %d, want 3 vs 2", created[0].Participant1ID, created[0].Participant2ID)
	}
	if created[1].Participant1ID != 1 || created[1].Participant2ID != 4 {
		t.Errorf("second semifinal = %d vs %d, want 1 vs 4", created[1].Participant1ID, created[1].Participant2ID)
	}

	// Повторная генерация — тихий no-op.
	again, err := svc.GenerateSemiFinals(context.Background(), 1)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second run created %d semifinals, want 0", len(again))
	}
}

func TestGenerateSemiFinalsTooFewParticipants(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	participantRepo := newFakeParticipantRepo(testParticipants(1, 1, 2, 3)...)
	matchRepo := newFakeMatchRepo()
	svc := newTestBracketService(matchRepo, participantRepo, categoryRepo)

	created, err := svc.GenerateSemiFinals(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateSemiFinals returned error: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d semifinals with three participants, want 0", len(created))
	}
}

func TestGenerateFinals(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	participantRepo := newFakeParticipantRepo(testParticipants(1, 1, 2, 3, 4)...)

	semi := func(p1, p2 int, winner *int, status models.MatchStatus) *models.Match {
		return &models.Match{
			CategoryID:     1,
			Participant1ID: p1,
			Participant2ID: p2,
			Round:          models.RoundSemiFinal,
			Status:         status,
			WinnerID:       winner,
		}
	}

	t.Run("needs both semifinals completed", func(t *testing.T) {
		w := 1
		matchRepo := newFakeMatchRepo(
			semi(1, 4, &w, models.MatchStatusCompleted),
			semi(2, 3, nil, models.MatchStatusPending),
		)
		matchRepo.next = 100
		svc := newTestBracketService(matchRepo, participantRepo, categoryRepo)

		created, err := svc.GenerateFinals(context.Background(), 1)
		if err != nil {
			t.Fatalf("GenerateFinals returned error: %v", err)
		}
		if len(created) != 0 {
			t.Errorf("created %d finals with a pending semifinal, want 0", len(created))
		}
	})

	t.Run("final from both winners", func(t *testing.T) {
		w1, w2 := 1, 3
		matchRepo := newFakeMatchRepo(
			semi(1, 4, &w1, models.MatchStatusCompleted),
			semi(2, 3, &w2, models.MatchStatusCompleted),
		)
		matchRepo.next = 100
		svc := newTestBracketService(matchRepo, participantRepo, categoryRepo)

		created, err := svc.GenerateFinals(context.Background(), 1)
		if err != nil {
			t.Fatalf("GenerateFinals returned error: %v", err)
		}
		if len(created) != 1 {
			t.Fatalf("created %d finals, want 1", len(created))
		}
		final := created[0]
		if final.Round != models.RoundFinal || final.Participant1ID != 1 || final.Participant2ID != 3 {
			t.Errorf("final = %+v, want 1 vs 3", final)
		}

		// Финал уже есть — повторный вызов ничего не создаёт.
		again, err := svc.GenerateFinals(context.Background(), 1)
		if err != nil {
			t.Fatalf("second run returned error: %v", err)
		}
		if len(again) != 0 {
			t.Errorf("second run created %d finals, want 0", len(again))
		}
	})
}
