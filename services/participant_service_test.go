package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

func newTestParticipantService(participantRepo *fakeParticipantRepo, categoryRepo *fakeCategoryRepo, userRepo *fakeUserRepo) *ParticipantService {
	return NewParticipantService(participantRepo, categoryRepo, userRepo, newFakeMatchRepo())
}

func singlesCategory(id int) *models.Category {
	return &models.Category{ID: id, TournamentID: 1, Name: "Singles", Type: models.CategorySingles}
}

func doublesCategory(id int) *models.Category {
	return &models.Category{ID: id, TournamentID: 1, Name: "Doubles", Type: models.CategoryDoubles}
}

func TestRegisterSingles(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(singlesCategory(1))
	userRepo := newFakeUserRepo(&models.User{ID: 1, Email: "a@b.c"})
	svc := newTestParticipantService(newFakeParticipantRepo(), categoryRepo, userRepo)

	t.Run("partner not allowed", func(t *testing.T) {
		partner := 2
		_, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 1, PartnerID: &partner})
		if !errors.Is(err, ErrPartnerNotAllowed) {
			t.Errorf("error = %v, want ErrPartnerNotAllowed", err)
		}
	})

	t.Run("registers without partner", func(t *testing.T) {
		p, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 1})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if p.UserID != 1 || p.CategoryID != 1 || p.PartnerID != nil {
			t.Errorf("participant = %+v", p)
		}
	})

	t.Run("repeat registration is a no-op", func(t *testing.T) {
		first, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 1})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		second, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 1})
		if err != nil {
			t.Fatalf("repeat Register returned error: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("repeat registration created a new participant: %d != %d", second.ID, first.ID)
		}
	})
}

func TestRegisterDoubles(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(doublesCategory(2))
	userRepo := newFakeUserRepo(
		&models.User{ID: 1, Email: "a@b.c"},
		&models.User{ID: 2, Email: "d@e.f"},
	)
	svc := newTestParticipantService(newFakeParticipantRepo(), categoryRepo, userRepo)

	t.Run("partner required", func(t *testing.T) {
		_, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 2})
		if !errors.Is(err, ErrPartnerRequired) {
			t.Errorf("error = %v, want ErrPartnerRequired", err)
		}
	})

	t.Run("self pairing rejected", func(t *testing.T) {
		partner := 1
		_, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 2, PartnerID: &partner})
		if !errors.Is(err, ErrPartnerSelfPairing) {
			t.Errorf("error = %v, want ErrPartnerSelfPairing", err)
		}
	})

	t.Run("unknown partner rejected", func(t *testing.T) {
		partner := 99
		_, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 2, PartnerID: &partner})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("registers with existing partner", func(t *testing.T) {
		partner := 2
		p, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 2, PartnerID: &partner})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if p.PartnerID == nil || *p.PartnerID != 2 {
			t.Errorf("participant partner = %v, want 2", p.PartnerID)
		}
	})
}

func TestRegisterUnknownCategory(t *testing.T) {
	svc := newTestParticipantService(newFakeParticipantRepo(), newFakeCategoryRepo(), newFakeUserRepo())

	_, err := svc.Register(context.Background(), 1, RegistrationInput{CategoryID: 42})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
}

// Ошибка в середине пачки регистраций останавливает её, уже созданные
// записи возвращаются.
func TestRegisterManyStopsOnError(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(singlesCategory(1))
	userRepo := newFakeUserRepo(&models.User{ID: 1, Email: "a@b.c"})
	svc := newTestParticipantService(newFakeParticipantRepo(), categoryRepo, userRepo)

	inputs := []RegistrationInput{
		{CategoryID: 1},
		{CategoryID: 99},
	}

	registered, err := svc.RegisterMany(context.Background(), 1, inputs)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("error = %v, want ErrCategoryNotFound", err)
	}
	if len(registered) != 1 {
		t.Errorf("got %d registered before failure, want 1", len(registered))
	}
}

func TestListCategoriesForUser(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(singlesCategory(1), doublesCategory(2))
	participantRepo := newFakeParticipantRepo(
		&models.Participant{ID: 1, CategoryID: 1, UserID: 5},
		// В парной категории пользователь 5 — партнёр.
		&models.Participant{ID: 2, CategoryID: 2, UserID: 6, PartnerID: intPtr(5)},
	)
	svc := newTestParticipantService(participantRepo, categoryRepo, newFakeUserRepo())

	categories, err := svc.ListCategoriesForUser(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ListCategoriesForUser returned error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("got %d categories, want 2 (player and partner roles)", len(categories))
	}
}

func TestUnregister(t *testing.T) {
	t.Run("unknown participant", func(t *testing.T) {
		svc := newTestParticipantService(newFakeParticipantRepo(), newFakeCategoryRepo(), newFakeUserRepo())
		if err := svc.Unregister(context.Background(), 99); !errors.Is(err, ErrParticipantNotFound) {
			t.Errorf("Unregister error = %v, want ErrParticipantNotFound", err)
		}
	})

	t.Run("participant with matches is protected", func(t *testing.T) {
		participantRepo := newFakeParticipantRepo(&models.Participant{ID: 7, CategoryID: 1, UserID: 1})
		matchRepo := newFakeMatchRepo(&models.Match{
			ID:             1,
			CategoryID:     1,
			Participant1ID: 7,
			Participant2ID: 8,
			Round:          models.RoundGroup,
			Status:         models.MatchStatusPending,
		})
		svc := NewParticipantService(participantRepo, newFakeCategoryRepo(), newFakeUserRepo(), matchRepo)

		if err := svc.Unregister(context.Background(), 7); !errors.Is(err, ErrParticipantHasMatches) {
			t.Errorf("Unregister error = %v, want ErrParticipantHasMatches", err)
		}
		if _, err := participantRepo.FindByID(context.Background(), 7); err != nil {
			t.Errorf("participant was removed despite matches: %v", err)
		}
	})

	t.Run("participant without matches is removed", func(t *testing.T) {
		participantRepo := newFakeParticipantRepo(&models.Participant{ID: 7, CategoryID: 1, UserID: 1})
		svc := NewParticipantService(participantRepo, newFakeCategoryRepo(), newFakeUserRepo(), newFakeMatchRepo())

		if err := svc.Unregister(context.Background(), 7); err != nil {
			t.Fatalf("Unregister returned error: %v", err)
		}
		if _, err := participantRepo.FindByID(context.Background(), 7); !errors.Is(err, repositories.ErrParticipantNotFound) {
			t.Errorf("participant still present, error = %v", err)
		}
	})
}
