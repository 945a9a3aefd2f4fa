package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

const defaultNotificationLimit = 50

type NotificationService interface {
	List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context) (int, error)
	UnreadCount(ctx context.Context) (int, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	logger           *slog.Logger
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, logger *slog.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (s *notificationService) List(ctx context.Context, unreadOnly bool, limit int) ([]*models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}
	notifications, err := s.notificationRepo.List(ctx, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	for _, n := range notifications {
		if err := n.DecodePayload(); err != nil {
			// Битый payload не должен ломать весь список.
			s.logger.Warn("failed to decode notification payload", slog.Int("notification_id", n.ID), slog.Any("error", err))
		}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id int) error {
	err := s.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int, error) {
	marked, err := s.notificationRepo.MarkAllRead(ctx)
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		s.logger.Info("notifications marked read", slog.Int("count", marked))
	}
	return marked, nil
}

func (s *notificationService) UnreadCount(ctx context.Context) (int, error) {
	return s.notificationRepo.CountUnread(ctx)
}
