package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

// ParticipantService инкапсулирует регистрацию и выборку участников категорий.
type ParticipantService struct {
	repo         repositories.ParticipantRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
	matchRepo    repositories.MatchRepository
}

func NewParticipantService(
	repo repositories.ParticipantRepository,
	categoryRepo repositories.CategoryRepository,
	userRepo repositories.UserRepository,
	matchRepo repositories.MatchRepository,
) *ParticipantService {
	return &ParticipantService{
		repo:         repo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		matchRepo:    matchRepo,
	}
}

type RegistrationInput struct {
	CategoryID int  `json:"category_id"`
	PartnerID  *int `json:"partner_id,omitempty"`
}

// Register регистрирует пользователя в категории. Для doubles обязателен
// партнёр, отличный от самого игрока; для singles партнёра быть не должно.
// Повторная регистрация в той же категории — no-op, возвращается
// существующая запись.
func (s *ParticipantService) Register(ctx context.Context, userID int, input RegistrationInput) (*models.Participant, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("ошибка при проверке категории: %w", err)
	}

	switch category.Type {
	case models.CategoryDoubles:
		if input.PartnerID == nil {
			return nil, ErrPartnerRequired
		}
		if *input.PartnerID == userID {
			return nil, ErrPartnerSelfPairing
		}
		if _, err := s.userRepo.GetByID(ctx, *input.PartnerID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("ошибка при проверке партнёра: %w", err)
		}
	case models.CategorySingles:
		if input.PartnerID != nil {
			return nil, ErrPartnerNotAllowed
		}
	default:
		return nil, ErrCategoryTypeInvalid
	}

	// Проверка на повторную регистрацию
	existing, err := s.repo.FindByCategoryAndUser(ctx, input.CategoryID, userID)
	if err != nil && !errors.Is(err, repositories.ErrParticipantNotFound) {
		return nil, fmt.Errorf("ошибка при проверке участия: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	participant := &models.Participant{
		CategoryID: input.CategoryID,
		UserID:     userID,
		PartnerID:  input.PartnerID,
	}
	if err := s.repo.Create(ctx, participant); err != nil {
		// Гонка двух одинаковых регистраций: уникальный индекс вернул
		// конфликт, перечитываем существующую запись.
		if errors.Is(err, repositories.ErrParticipantConflict) {
			return s.repo.FindByCategoryAndUser(ctx, input.CategoryID, userID)
		}
		return nil, fmt.Errorf("ошибка создания участника: %w", err)
	}
	return participant, nil
}

// RegisterMany регистрирует пользователя сразу в нескольких категориях.
func (s *ParticipantService) RegisterMany(ctx context.Context, userID int, inputs []RegistrationInput) ([]*models.Participant, error) {
	registered := make([]*models.Participant, 0, len(inputs))
	for _, input := range inputs {
		p, err := s.Register(ctx, userID, input)
		if err != nil {
			return registered, err
		}
		registered = append(registered, p)
	}
	return registered, nil
}

// Unregister снимает участника с категории. Участник с матчами не снимается:
// сетка и таблица уже на него ссылаются.
func (s *ParticipantService) Unregister(ctx context.Context, participantID int) error {
	participant, err := s.repo.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}

	matches, err := s.matchRepo.ListByCategory(ctx, participant.CategoryID, nil, nil)
	if err != nil {
		return fmt.Errorf("ошибка проверки матчей участника %d: %w", participantID, err)
	}
	for _, m := range matches {
		if m.Participant1ID == participantID || m.Participant2ID == participantID {
			return ErrParticipantHasMatches
		}
	}

	if err := s.repo.Delete(ctx, participantID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("ошибка удаления участника %d: %w", participantID, err)
	}
	return nil
}

// ListByCategory возвращает участников категории вместе с данными игроков.
func (s *ParticipantService) ListByCategory(ctx context.Context, categoryID int) ([]*models.Participant, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return s.repo.ListByCategory(ctx, categoryID, true)
}

// ListCategoriesForUser возвращает категории турнира, в которых пользователь
// участвует как игрок или партнёр.
func (s *ParticipantService) ListCategoriesForUser(ctx context.Context, tournamentID, userID int) ([]*models.Category, error) {
	categories, err := s.categoryRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	participations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	member := make(map[int]bool, len(participations))
	for _, p := range participations {
		member[p.CategoryID] = true
	}

	result := make([]*models.Category, 0)
	for _, c := range categories {
		if member[c.ID] {
			result = append(result, c)
		}
	}
	return result, nil
}
