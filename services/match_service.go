package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Dosada05/tennis-system/brackets"
	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
	"github.com/Dosada05/tennis-system/scoring"
)

// MatchService — ввод счёта и выборки матчей. При записи счёта статус и
// победитель всегда выводятся из сырых сетов через scoring, а не берутся
// из запроса.
type MatchService struct {
	matchRepo       repositories.MatchRepository
	categoryRepo    repositories.CategoryRepository
	participantRepo repositories.ParticipantRepository
	wsHub           *brackets.Hub
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	categoryRepo repositories.CategoryRepository,
	participantRepo repositories.ParticipantRepository,
	wsHub *brackets.Hub,
) *MatchService {
	return &MatchService{
		matchRepo:       matchRepo,
		categoryRepo:    categoryRepo,
		participantRepo: participantRepo,
		wsHub:           wsHub,
	}
}

// RecordScore записывает сырые счета сетов и выводит из них статус и
// победителя. Операция идемпотентна относительно данных: повторная запись
// тех же сетов даёт тот же итог.
func (s *MatchService) RecordScore(ctx context.Context, matchID int, sets [3]models.SetScore) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("ошибка загрузки матча: %w", err)
	}

	result := scoring.ResolveMatch(sets)

	status := models.MatchStatusPending
	var winnerID *int
	switch result.Winner {
	case scoring.Winner1:
		status = models.MatchStatusCompleted
		winnerID = &match.Participant1ID
	case scoring.Winner2:
		status = models.MatchStatusCompleted
		winnerID = &match.Participant2ID
	}

	if err := s.matchRepo.UpdateScore(ctx, matchID, sets, status, winnerID); err != nil {
		return nil, fmt.Errorf("ошибка записи счёта матча %d: %w", matchID, err)
	}

	match.Set1, match.Set2, match.Set3 = sets[0], sets[1], sets[2]
	match.Status = status
	match.WinnerID = winnerID

	s.broadcastMatchUpdate(ctx, match)
	return match, nil
}

// CreateMatch создаёт одиночный матч вручную (вне генераторов).
func (s *MatchService) CreateMatch(ctx context.Context, categoryID, participant1ID, participant2ID int) (*models.Match, error) {
	if participant1ID == participant2ID {
		return nil, ErrMatchSelfPairing
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	match := &models.Match{
		CategoryID:     categoryID,
		Participant1ID: participant1ID,
		Participant2ID: participant2ID,
		Round:          models.RoundGroup,
		Status:         models.MatchStatusPending,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, fmt.Errorf("ошибка создания матча: %w", err)
	}
	return match, nil
}

// DeleteMatch удаляет матч, пока по нему не записан результат. Завершённый
// матч уже учтён в таблице, удалять его нельзя.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("ошибка загрузки матча: %w", err)
	}
	if match.Status == models.MatchStatusCompleted {
		return ErrMatchAlreadyCompleted
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("ошибка удаления матча %d: %w", matchID, err)
	}
	return nil
}

// ListByCategory возвращает матчи категории с подгруженными участниками.
func (s *MatchService) ListByCategory(ctx context.Context, categoryID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByCategory(ctx, categoryID, nil, nil)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByCategory(ctx, categoryID, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	for _, m := range matches {
		m.Participant1 = byID[m.Participant1ID]
		m.Participant2 = byID[m.Participant2ID]
	}
	return matches, nil
}

// Standings пересчитывает таблицу категории из сохранённых матчей.
func (s *MatchService) Standings(ctx context.Context, categoryID int) ([]scoring.StandingsRow, error) {
	participants, err := s.participantRepo.ListByCategory(ctx, categoryID, true)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByCategory(ctx, categoryID, nil, nil)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeStandings(participants, matches), nil
}

func (s *MatchService) broadcastMatchUpdate(ctx context.Context, match *models.Match) {
	if s.wsHub == nil {
		return
	}
	category, err := s.categoryRepo.GetByID(ctx, match.CategoryID)
	if err != nil {
		return
	}
	room := strconv.Itoa(category.TournamentID)
	s.wsHub.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    "MATCH_UPDATED",
		Payload: match,
		RoomID:  room,
	})
}
