package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
	"github.com/Dosada05/tennis-system/storage"
	"golang.org/x/sync/errgroup"
)

// TournamentService — создание турниров с категориями и агрегированные выборки.
type TournamentService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	categoryRepo    repositories.CategoryRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	uploader        storage.FileUploader
	logger          *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	categoryRepo repositories.CategoryRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		db:              db,
		tournamentRepo:  tournamentRepo,
		categoryRepo:    categoryRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		uploader:        uploader,
		logger:          logger,
	}
}

type CategoryInput struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Format *string `json:"format,omitempty"`
}

type TournamentInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Location    *string         `json:"location,omitempty"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Categories  []CategoryInput `json:"categories"`
}

// CreateWithCategories создаёт турнир вместе с категориями в одной транзакции.
func (s *TournamentService) CreateWithCategories(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrTournamentInvalidDates
	}
	for _, c := range input.Categories {
		if c.Type != string(models.CategorySingles) && c.Type != string(models.CategoryDoubles) {
			return nil, ErrCategoryTypeInvalid
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		}
	}()

	tournament := &models.Tournament{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.StatusOngoing,
	}
	if txErr = s.tournamentRepo.Create(ctx, tx, tournament); txErr != nil {
		return nil, txErr
	}

	for _, c := range input.Categories {
		category := &models.Category{
			TournamentID: tournament.ID,
			Name:         c.Name,
			Type:         models.CategoryType(c.Type),
			Format:       c.Format,
		}
		if txErr = s.categoryRepo.Create(ctx, tx, category); txErr != nil {
			return nil, txErr
		}
		tournament.Categories = append(tournament.Categories, *category)
	}

	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit tournament creation: %w", txErr)
	}

	s.logger.Info("tournament created",
		slog.Int("id", tournament.ID),
		slog.Int("categories", len(tournament.Categories)))
	return tournament, nil
}

// GetWithCategories возвращает турнир и его категории; загрузка параллельная.
func (s *TournamentService) GetWithCategories(ctx context.Context, id int) (*models.Tournament, error) {
	var (
		tournament *models.Tournament
		categories []*models.Category
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		cs, err := s.categoryRepo.ListByTournament(gCtx, id)
		if err != nil {
			return err
		}
		categories = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tournament.Categories = make([]models.Category, len(categories))
	for i, c := range categories {
		tournament.Categories[i] = *c
	}
	s.attachPosterURL(tournament)
	return tournament, nil
}

func (s *TournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.attachPosterURL(t)
	}
	return tournaments, nil
}

// UpdateStatus — админская смена статуса (ongoing/completed).
func (s *TournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	if status != models.StatusOngoing && status != models.StatusCompleted {
		return ErrValidationFailed
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

// UploadPoster загружает афишу турнира в объектное хранилище и сохраняет ключ.
func (s *TournamentService) UploadPoster(ctx context.Context, id int, contentType string, r io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		// Хранилище не сконфигурировано — uploader в main может быть nil.
		return nil, ErrPosterUploadsDisabled
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/poster", id)
	result, err := s.uploader.Upload(ctx, key, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки афиши турнира %d: %w", id, err)
	}

	if err := s.tournamentRepo.UpdatePosterKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}
	tournament.PosterKey = &result.Key
	s.attachPosterURL(tournament)
	return tournament, nil
}

// AutoCompleteEndedTournaments переводит турниры с прошедшей датой окончания
// в completed. Вызывается планировщиком из main.
func (s *TournamentService) AutoCompleteEndedTournaments(ctx context.Context) error {
	ids, err := s.tournamentRepo.CompleteEnded(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		s.logger.Info("tournaments auto-completed", slog.Any("ids", ids))
	}
	return nil
}

func (s *TournamentService) attachPosterURL(t *models.Tournament) {
	if s.uploader == nil || t.PosterKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.PosterKey)
	if url != "" {
		t.PosterURL = &url
	}
}
