package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/utils"
)

func newTestUserService(userRepo *fakeUserRepo, participantRepo *fakeParticipantRepo, categoryRepo *fakeCategoryRepo) *UserService {
	participantService := NewParticipantService(participantRepo, categoryRepo, userRepo, newFakeMatchRepo())
	return NewUserService(userRepo, participantService)
}

func TestCreateGuest(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		svc := newTestUserService(newFakeUserRepo(), newFakeParticipantRepo(), newFakeCategoryRepo())
		_, err := svc.CreateGuest(context.Background(), GuestInput{})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("generates technical email", func(t *testing.T) {
		svc := newTestUserService(newFakeUserRepo(), newFakeParticipantRepo(), newFakeCategoryRepo())
		user, err := svc.CreateGuest(context.Background(), GuestInput{Name: "Walk-in"})
		if err != nil {
			t.Fatalf("CreateGuest returned error: %v", err)
		}
		if !strings.HasPrefix(user.Email, "guest_") || !strings.HasSuffix(user.Email, "@tennis.app") {
			t.Errorf("generated email = %q", user.Email)
		}
		if user.Role != models.RoleUser || !user.IsActive {
			t.Errorf("guest user = %+v", user)
		}
	})

	t.Run("keeps provided email", func(t *testing.T) {
		svc := newTestUserService(newFakeUserRepo(), newFakeParticipantRepo(), newFakeCategoryRepo())
		email := "walkin@example.com"
		user, err := svc.CreateGuest(context.Background(), GuestInput{Name: "Walk-in", Email: &email})
		if err != nil {
			t.Fatalf("CreateGuest returned error: %v", err)
		}
		if user.Email != email {
			t.Errorf("email = %q, want %q", user.Email, email)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		userRepo := newFakeUserRepo(&models.User{ID: 1, Email: "taken@example.com"})
		svc := newTestUserService(userRepo, newFakeParticipantRepo(), newFakeCategoryRepo())
		email := "taken@example.com"
		_, err := svc.CreateGuest(context.Background(), GuestInput{Name: "Dup", Email: &email})
		if !errors.Is(err, ErrUserEmailConflict) {
			t.Errorf("error = %v, want ErrUserEmailConflict", err)
		}
	})
}

func TestCreateGuestAndRegister(t *testing.T) {
	categoryRepo := newFakeCategoryRepo(singlesCategory(1), doublesCategory(2))
	userRepo := newFakeUserRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestUserService(userRepo, participantRepo, categoryRepo)

	partnerName := "Partner Guest"
	user, err := svc.CreateGuestAndRegister(context.Background(), GuestInput{Name: "Main Guest"}, []GuestRegistrationInput{
		{CategoryID: 1},
		{CategoryID: 2, NewPartnerName: &partnerName},
	})
	if err != nil {
		t.Fatalf("CreateGuestAndRegister returned error: %v", err)
	}

	// Создано два гостя: основной и партнёр.
	users, _ := userRepo.List(context.Background())
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}

	registrations, _ := participantRepo.ListByUser(context.Background(), user.ID)
	if len(registrations) != 2 {
		t.Fatalf("got %d registrations, want 2", len(registrations))
	}
	for _, reg := range registrations {
		if reg.CategoryID == 2 && reg.PartnerID == nil {
			t.Errorf("doubles registration without partner: %+v", reg)
		}
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{ID: 1, Email: "a@b.c", Role: models.RoleUser})
	svc := newTestUserService(userRepo, newFakeParticipantRepo(), newFakeCategoryRepo())

	if err := svc.UpdateRole(context.Background(), 1, "superuser"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("error = %v, want ErrValidationFailed", err)
	}

	if err := svc.UpdateRole(context.Background(), 1, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	u, _ := userRepo.GetByID(context.Background(), 1)
	if u.Role != models.RoleAdmin {
		t.Errorf("role = %v, want admin", u.Role)
	}

	if err := svc.UpdateRole(context.Background(), 99, models.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestResetPassword(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		svc := newTestUserService(newFakeUserRepo(&models.User{ID: 1, Email: "a@b.c"}), newFakeParticipantRepo(), newFakeCategoryRepo())
		if err := svc.ResetPassword(context.Background(), 1, "short"); !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("ResetPassword error = %v, want ErrPasswordTooShort", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestUserService(newFakeUserRepo(), newFakeParticipantRepo(), newFakeCategoryRepo())
		if err := svc.ResetPassword(context.Background(), 42, "new-password"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("ResetPassword error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("stores a verifiable hash", func(t *testing.T) {
		userRepo := newFakeUserRepo(&models.User{ID: 1, Email: "a@b.c"})
		svc := newTestUserService(userRepo, newFakeParticipantRepo(), newFakeCategoryRepo())

		if err := svc.ResetPassword(context.Background(), 1, "new-password"); err != nil {
			t.Fatalf("ResetPassword returned error: %v", err)
		}

		user, err := userRepo.GetByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetByID returned error: %v", err)
		}
		if user.PasswordHash == "new-password" {
			t.Error("password stored in plain text")
		}
		if !utils.CheckPasswordHash("new-password", user.PasswordHash) {
			t.Error("stored hash does not verify the new password")
		}
	})
}
