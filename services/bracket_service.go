package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Dosada05/tennis-system/brackets"
	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
	"github.com/Dosada05/tennis-system/scoring"
)

// BracketService ведёт категорию по раундам: group → semi-final → final.
// Нарушенные предусловия — тихие no-op'ы (админ может жать кнопку
// спекулятивно), реальные ошибки хранилища пробрасываются.
type BracketService interface {
	GenerateGroupFixtures(ctx context.Context, categoryID int) ([]*models.Match, error)
	GenerateSemiFinals(ctx context.Context, categoryID int) ([]*models.Match, error)
	GenerateFinals(ctx context.Context, categoryID int) ([]*models.Match, error)
}

type bracketService struct {
	matchRepo       repositories.MatchRepository
	participantRepo repositories.ParticipantRepository
	categoryRepo    repositories.CategoryRepository
	wsHub           *brackets.Hub
	logger          *slog.Logger
}

func NewBracketService(
	matchRepo repositories.MatchRepository,
	participantRepo repositories.ParticipantRepository,
	categoryRepo repositories.CategoryRepository,
	wsHub *brackets.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		matchRepo:       matchRepo,
		participantRepo: participantRepo,
		categoryRepo:    categoryRepo,
		wsHub:           wsHub,
		logger:          logger,
	}
}

// GenerateGroupFixtures создаёт круговые матчи группового этапа: по одному
// на каждую неупорядоченную пару участников. Уже существующие пары
// пропускаются, так что повторный вызов ничего не добавляет.
func (s *bracketService) GenerateGroupFixtures(ctx context.Context, categoryID int) ([]*models.Match, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	participants, err := s.participantRepo.ListByCategory(ctx, categoryID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for category %d: %w", categoryID, err)
	}

	groupRound := models.RoundGroup
	existing, err := s.matchRepo.ListByCategory(ctx, categoryID, &groupRound, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list group matches for category %d: %w", categoryID, err)
	}

	pairings := brackets.GroupFixtures(participants, existing)
	created, err := s.createPairings(ctx, categoryID, pairings)
	if err != nil {
		return created, err
	}
	if len(created) > 0 {
		s.logger.Info("group fixtures generated",
			slog.Int("category_id", categoryID),
			slog.Int("matches", len(created)))
		s.broadcastRound(ctx, category, models.RoundGroup, created)
	}
	return created, nil
}

// GenerateSemiFinals сеет полуфиналы из группового этапа: ранжирование
// только по победам в group-матчах, пары 1—4 и 2—3. No-op, если полуфиналы
// уже существуют или ранжированных участников меньше четырёх.
func (s *bracketService) GenerateSemiFinals(ctx context.Context, categoryID int) ([]*models.Match, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	// Защита от дублей раунда: если хоть один полуфинал есть, не генерируем.
	semiRound := models.RoundSemiFinal
	existingSemis, err := s.matchRepo.ListByCategory(ctx, categoryID, &semiRound, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list semi-final matches for category %d: %w", categoryID, err)
	}
	if len(existingSemis) > 0 {
		return nil, nil
	}

	participants, err := s.participantRepo.ListByCategory(ctx, categoryID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for category %d: %w", categoryID, err)
	}

	groupRound := models.RoundGroup
	completed := models.MatchStatusCompleted
	groupMatches, err := s.matchRepo.ListByCategory(ctx, categoryID, &groupRound, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed group matches for category %d: %w", categoryID, err)
	}

	ranked := scoring.RankByWins(participants, groupMatches)
	pairings := brackets.SeedSemiFinals(ranked)
	created, err := s.createPairings(ctx, categoryID, pairings)
	if err != nil {
		return created, err
	}
	if len(created) > 0 {
		s.logger.Info("semi-finals generated", slog.Int("category_id", categoryID))
		s.broadcastRound(ctx, category, models.RoundSemiFinal, created)
	}
	return created, nil
}

// GenerateFinals создаёт финал из победителей обоих полуфиналов. No-op,
// если финал уже существует или завершённых полуфиналов с победителем
// меньше двух.
func (s *bracketService) GenerateFinals(ctx context.Context, categoryID int) ([]*models.Match, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	finalRound := models.RoundFinal
	existingFinals, err := s.matchRepo.ListByCategory(ctx, categoryID, &finalRound, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list final matches for category %d: %w", categoryID, err)
	}
	if len(existingFinals) > 0 {
		return nil, nil
	}

	semiRound := models.RoundSemiFinal
	completed := models.MatchStatusCompleted
	semis, err := s.matchRepo.ListByCategory(ctx, categoryID, &semiRound, &completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed semi-finals for category %d: %w", categoryID, err)
	}
	if len(semis) < 2 {
		return nil, nil
	}

	winners := make([]int, 0, len(semis))
	for _, m := range semis {
		if m.WinnerID != nil {
			winners = append(winners, *m.WinnerID)
		}
	}

	pairing, ok := brackets.FinalPairing(winners)
	if !ok {
		return nil, nil
	}

	created, err := s.createPairings(ctx, categoryID, []brackets.Pairing{pairing})
	if err != nil {
		return created, err
	}
	if len(created) > 0 {
		s.logger.Info("final generated", slog.Int("category_id", categoryID))
		s.broadcastRound(ctx, category, models.RoundFinal, created)
	}
	return created, nil
}

func (s *bracketService) createPairings(ctx context.Context, categoryID int, pairings []brackets.Pairing) ([]*models.Match, error) {
	created := make([]*models.Match, 0, len(pairings))
	for _, p := range pairings {
		match := &models.Match{
			CategoryID:     categoryID,
			Participant1ID: p.Participant1ID,
			Participant2ID: p.Participant2ID,
			Round:          p.Round,
			Status:         models.MatchStatusPending,
		}
		if err := s.matchRepo.Create(ctx, nil, match); err != nil {
			// Проигранная гонка с параллельной генерацией: пара уже
			// вставлена, пропускаем её и продолжаем.
			if errors.Is(err, repositories.ErrMatchPairConflict) {
				continue
			}
			return created, fmt.Errorf("failed to create %s match for category %d: %w", p.Round, categoryID, err)
		}
		created = append(created, match)
	}
	return created, nil
}

func (s *bracketService) broadcastRound(ctx context.Context, category *models.Category, round models.MatchRound, matches []*models.Match) {
	if s.wsHub == nil {
		return
	}
	room := strconv.Itoa(category.TournamentID)
	s.wsHub.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type: "ROUND_GENERATED",
		Payload: map[string]interface{}{
			"category_id": category.ID,
			"round":       round,
			"matches":     matches,
		},
		RoomID: room,
	})
}
