package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
	"github.com/Dosada05/tennis-system/utils"
	"github.com/google/uuid"
)

// UserService — админские операции над пользователями и создание гостей.
type UserService struct {
	userRepo           repositories.UserRepository
	participantService *ParticipantService
}

func NewUserService(userRepo repositories.UserRepository, participantService *ParticipantService) *UserService {
	return &UserService{
		userRepo:           userRepo,
		participantService: participantService,
	}
}

type GuestInput struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type GuestRegistrationInput struct {
	CategoryID     int     `json:"category_id"`
	PartnerID      *int    `json:"partner_id,omitempty"`
	NewPartnerName *string `json:"new_partner_name,omitempty"`
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, id int, role models.UserRole) error {
	if role != models.RoleAdmin && role != models.RoleUser {
		return ErrValidationFailed
	}
	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.userRepo.UpdateActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ResetPassword ставит пользователю новый пароль (админская операция,
// в том числе выдача пароля гостевой учётке).
func (s *UserService) ResetPassword(ctx context.Context, id int, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, id, hash); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// CreateGuest заводит учётку без пароля (регистрация игроков админом на
// месте). Если email не указан, генерируется технический.
func (s *UserService) CreateGuest(ctx context.Context, input GuestInput) (*models.User, error) {
	if input.Name == "" {
		return nil, ErrValidationFailed
	}

	email := guestEmail(input.Email)
	user := &models.User{
		Name:     input.Name,
		Email:    email,
		Phone:    input.Phone,
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("ошибка создания гостя: %w", err)
	}
	return user, nil
}

// CreateGuestAndRegister создаёт гостя и сразу регистрирует его в категориях.
// NewPartnerName позволяет на лету завести и партнёра-гостя для пары.
func (s *UserService) CreateGuestAndRegister(ctx context.Context, guest GuestInput, registrations []GuestRegistrationInput) (*models.User, error) {
	user, err := s.CreateGuest(ctx, guest)
	if err != nil {
		return nil, err
	}

	inputs := make([]RegistrationInput, 0, len(registrations))
	for _, reg := range registrations {
		partnerID := reg.PartnerID
		if reg.NewPartnerName != nil && *reg.NewPartnerName != "" {
			partner, err := s.CreateGuest(ctx, GuestInput{Name: *reg.NewPartnerName})
			if err != nil {
				return user, fmt.Errorf("ошибка создания партнёра-гостя: %w", err)
			}
			partnerID = &partner.ID
		}
		inputs = append(inputs, RegistrationInput{CategoryID: reg.CategoryID, PartnerID: partnerID})
	}

	if _, err := s.participantService.RegisterMany(ctx, user.ID, inputs); err != nil {
		return user, err
	}
	return user, nil
}

func guestEmail(email *string) string {
	if email != nil && *email != "" {
		return *email
	}
	return fmt.Sprintf("guest_%s@tennis.app", uuid.NewString())
}
