package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

func intPtr(v int) *int { return &v }

func games(p1, p2 int) models.SetScore {
	return models.SetScore{P1Games: intPtr(p1), P2Games: intPtr(p2)}
}

func newTestMatchService(matchRepo *fakeMatchRepo, participantRepo *fakeParticipantRepo, categoryRepo *fakeCategoryRepo) *MatchService {
	return NewMatchService(matchRepo, categoryRepo, participantRepo, nil)
}

func TestRecordScoreDerivesOutcome(t *testing.T) {
	tiebreakSet := models.SetScore{
		P1Games: intPtr(6), P2Games: intPtr(6),
		P1Tiebreak: intPtr(10), P2Tiebreak: intPtr(8),
	}

	tests := []struct {
		name       string
		sets       [3]models.SetScore
		wantStatus models.MatchStatus
		wantWinner *int
	}{
		{
			name:       "straight sets participant one",
			sets:       [3]models.SetScore{games(6, 4), games(6, 2)},
			wantStatus: models.MatchStatusCompleted,
			wantWinner: intPtr(11),
		},
		{
			name:       "three sets with deciding tiebreak",
			sets:       [3]models.SetScore{games(6, 4), games(3, 6), tiebreakSet},
			wantStatus: models.MatchStatusCompleted,
			wantWinner: intPtr(11),
		},
		{
			name:       "participant two wins",
			sets:       [3]models.SetScore{games(4, 6), games(2, 6)},
			wantStatus: models.MatchStatusCompleted,
			wantWinner: intPtr(22),
		},
		{
			name:       "partial score keeps match pending",
			sets:       [3]models.SetScore{games(6, 4)},
			wantStatus: models.MatchStatusPending,
			wantWinner: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchRepo := newFakeMatchRepo(&models.Match{
				ID:             1,
				CategoryID:     1,
				Participant1ID: 11,
				Participant2ID: 22,
				Round:          models.RoundGroup,
				Status:         models.MatchStatusPending,
			})
			svc := newTestMatchService(matchRepo, newFakeParticipantRepo(), newFakeCategoryRepo(testCategory(1)))

			match, err := svc.RecordScore(context.Background(), 1, tt.sets)
			if err != nil {
				t.Fatalf("RecordScore returned error: %v", err)
			}
			if match.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", match.Status, tt.wantStatus)
			}
			switch {
			case tt.wantWinner == nil && match.WinnerID != nil:
				t.Errorf("winner = %d, want none", *match.WinnerID)
			case tt.wantWinner != nil && (match.WinnerID == nil || *match.WinnerID != *tt.wantWinner):
				t.Errorf("winner = %v, want %d", match.WinnerID, *tt.wantWinner)
			}

			// Итог сохранён, а не только возвращён.
			stored, _ := matchRepo.GetByID(context.Background(), 1)
			if stored.Status != tt.wantStatus {
				t.Errorf("stored status = %v, want %v", stored.Status, tt.wantStatus)
			}
		})
	}
}

// Исправление счёта: повторная запись других сетов переигрывает итог.
func TestRecordScoreOverwrite(t *testing.T) {
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:             1,
		CategoryID:     1,
		Participant1ID: 11,
		Participant2ID: 22,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusPending,
	})
	svc := newTestMatchService(matchRepo, newFakeParticipantRepo(), newFakeCategoryRepo(testCategory(1)))

	if _, err := svc.RecordScore(context.Background(), 1, [3]models.SetScore{games(6, 4), games(6, 2)}); err != nil {
		t.Fatalf("first RecordScore returned error: %v", err)
	}

	match, err := svc.RecordScore(context.Background(), 1, [3]models.SetScore{games(4, 6), games(2, 6)})
	if err != nil {
		t.Fatalf("second RecordScore returned error: %v", err)
	}
	if match.WinnerID == nil || *match.WinnerID != 22 {
		t.Errorf("winner after correction = %v, want 22", match.WinnerID)
	}
}

func TestRecordScoreMatchNotFound(t *testing.T) {
	svc := newTestMatchService(newFakeMatchRepo(), newFakeParticipantRepo(), newFakeCategoryRepo())

	_, err := svc.RecordScore(context.Background(), 42, [3]models.SetScore{})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("error = %v, want ErrMatchNotFound", err)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(testCategory(1))
	svc := newTestMatchService(newFakeMatchRepo(), newFakeParticipantRepo(), categoryRepo)

	t.Run("self pairing rejected", func(t *testing.T) {
		_, err := svc.CreateMatch(context.Background(), 1, 5, 5)
		if !errors.Is(err, ErrMatchSelfPairing) {
			t.Errorf("error = %v, want ErrMatchSelfPairing", err)
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := svc.CreateMatch(context.Background(), 99, 1, 2)
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("error = %v, want ErrCategoryNotFound", err)
		}
	})

	t.Run("manual match defaults to group round", func(t *testing.T) {
		match, err := svc.CreateMatch(context.Background(), 1, 1, 2)
		if err != nil {
			t.Fatalf("CreateMatch returned error: %v", err)
		}
		if match.Round != models.RoundGroup || match.Status != models.MatchStatusPending {
			t.Errorf("match = %+v", match)
		}
	})
}

func TestListByCategoryAttachesParticipants(t *testing.T) {
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:             1,
		CategoryID:     1,
		Participant1ID: 11,
		Participant2ID: 22,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusPending,
	})
	participantRepo := newFakeParticipantRepo(
		&models.Participant{ID: 11, CategoryID: 1, UserID: 1},
		&models.Participant{ID: 22, CategoryID: 1, UserID: 2},
	)
	svc := newTestMatchService(matchRepo, participantRepo, newFakeCategoryRepo(testCategory(1)))

	matches, err := svc.ListByCategory(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByCategory returned error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Participant1 == nil || m.Participant1.ID != 11 {
		t.Errorf("participant1 not attached: %+v", m.Participant1)
	}
	if m.Participant2 == nil || m.Participant2.ID != 22 {
		t.Errorf("participant2 not attached: %+v", m.Participant2)
	}
}

func TestDeleteMatch(t *testing.T) {
	pending := &models.Match{
		ID:             1,
		CategoryID:     1,
		Participant1ID: 11,
		Participant2ID: 22,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusPending,
	}
	completed := &models.Match{
		ID:             2,
		CategoryID:     1,
		Participant1ID: 11,
		Participant2ID: 33,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusCompleted,
		WinnerID:       intPtr(11),
	}
	matchRepo := newFakeMatchRepo(pending, completed)
	svc := newTestMatchService(matchRepo, newFakeParticipantRepo(), newFakeCategoryRepo(testCategory(1)))

	t.Run("unknown match", func(t *testing.T) {
		if err := svc.DeleteMatch(context.Background(), 99); !errors.Is(err, ErrMatchNotFound) {
			t.Errorf("DeleteMatch error = %v, want ErrMatchNotFound", err)
		}
	})

	t.Run("completed match is protected", func(t *testing.T) {
		if err := svc.DeleteMatch(context.Background(), completed.ID); !errors.Is(err, ErrMatchAlreadyCompleted) {
			t.Errorf("DeleteMatch error = %v, want ErrMatchAlreadyCompleted", err)
		}
		if _, err := matchRepo.GetByID(context.Background(), completed.ID); err != nil {
			t.Errorf("completed match was removed: %v", err)
		}
	})

	t.Run("pending match is deleted", func(t *testing.T) {
		if err := svc.DeleteMatch(context.Background(), pending.ID); err != nil {
			t.Fatalf("DeleteMatch returned error: %v", err)
		}
		if _, err := matchRepo.GetByID(context.Background(), pending.ID); !errors.Is(err, repositories.ErrMatchNotFound) {
			t.Errorf("pending match still present, error = %v", err)
		}
	})
}
