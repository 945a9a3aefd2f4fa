package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/tennis-system/repositories"
	"github.com/Dosada05/tennis-system/schedule"
)

// ScheduleService разворачивает недельный шаблон корта в конкретные слоты
// и сохраняет их. Дубликаты (тот же корт, то же время начала) отсекаются
// уникальным ограничением в БД, а не движком.
type ScheduleService struct {
	slotRepo repositories.CourtSlotRepository
	logger   *slog.Logger
}

func NewScheduleService(slotRepo repositories.CourtSlotRepository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// CreateSchedule генерирует слоты по шаблону и вставляет их батчем.
// Возвращает число реально созданных слотов (пересекающиеся с уже
// существующими молча пропущены).
func (s *ScheduleService) CreateSchedule(ctx context.Context, params schedule.Params) (int, error) {
	slots, err := schedule.Expand(params)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if len(slots) == 0 {
		return 0, nil
	}

	created, err := s.slotRepo.BatchCreate(ctx, nil, slots)
	if err != nil {
		return created, fmt.Errorf("ошибка сохранения слотов расписания: %w", err)
	}

	s.logger.Info("court schedule expanded",
		slog.String("court", params.CourtName),
		slog.Int("generated", len(slots)),
		slog.Int("created", created))
	return created, nil
}
