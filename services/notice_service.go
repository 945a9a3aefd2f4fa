package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

// NoticeService — админские объявления клуба. Правило единственного активного
// объявления обеспечивает слой хранения.
type NoticeService struct {
	repo   repositories.NoticeRepository
	logger *slog.Logger
}

func NewNoticeService(repo repositories.NoticeRepository, logger *slog.Logger) *NoticeService {
	return &NoticeService{
		repo:   repo,
		logger: logger,
	}
}

// Create публикует новое объявление. Оно сразу становится активным,
// предыдущее активное гаснет.
func (s *NoticeService) Create(ctx context.Context, content string) (*models.Notice, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrValidationFailed
	}

	notice := &models.Notice{Content: content}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("ошибка создания объявления: %w", err)
	}
	s.logger.Info("notice created", slog.Int("notice_id", notice.ID))
	return notice, nil
}

func (s *NoticeService) List(ctx context.Context) ([]*models.Notice, error) {
	return s.repo.List(ctx)
}

// GetActive возвращает текущее объявление для публичного баннера;
// nil — объявлений нет, это штатная ситуация.
func (s *NoticeService) GetActive(ctx context.Context) (*models.Notice, error) {
	notice, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return notice, nil
}

func (s *NoticeService) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *NoticeService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
