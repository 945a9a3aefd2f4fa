package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/utils"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	t.Run("password too short", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterInput{
			Name: "Alice", Email: "alice@example.com", Password: "short",
		})
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("error = %v, want ErrPasswordTooShort", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterInput{
			Name: "Alice", Email: "not-an-email", Password: "longenough",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo(&models.User{ID: 1, Email: "taken@example.com"})
		dup := NewAuthService(repo)
		_, err := dup.Register(context.Background(), RegisterInput{
			Name: "Bob", Email: "taken@example.com", Password: "longenough",
		})
		if !errors.Is(err, ErrUserEmailConflict) {
			t.Errorf("error = %v, want ErrUserEmailConflict", err)
		}
	})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != models.RoleUser || !user.IsActive {
		t.Errorf("registered user = %+v", user)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}
	if !utils.CheckPasswordHash("correct-horse", user.PasswordHash) {
		t.Error("stored hash does not verify the password")
	}

	t.Run("correct credentials", func(t *testing.T) {
		got, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("logged in as %d, want %d", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrong"})
		if !errors.Is(err, ErrAuthInvalidCredentials) {
			t.Errorf("error = %v, want ErrAuthInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
		if !errors.Is(err, ErrAuthInvalidCredentials) {
			t.Errorf("error = %v, want ErrAuthInvalidCredentials", err)
		}
	})

	t.Run("disabled account", func(t *testing.T) {
		if err := repo.UpdateActive(context.Background(), user.ID, false); err != nil {
			t.Fatalf("UpdateActive returned error: %v", err)
		}
		_, err := svc.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "correct-horse"})
		if !errors.Is(err, ErrAccountDisabled) {
			t.Errorf("error = %v, want ErrAccountDisabled", err)
		}
	})
}
