package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tennis-system/models"
	"github.com/Dosada05/tennis-system/repositories"
)

// BookingService — арбитр бронирования кортов. Сам захват слота выполняется
// одним условным UPDATE в репозитории; сервис лишь классифицирует отказ и
// навешивает уведомления.
type BookingService struct {
	slotRepo         repositories.CourtSlotRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	emailService     *EmailService
	logger           *slog.Logger
}

func NewBookingService(
	slotRepo repositories.CourtSlotRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailService *EmailService,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		slotRepo:         slotRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

type BookSlotInput struct {
	CategoryID *int `json:"category_id,omitempty"`
	OpponentID *int `json:"opponent_id,omitempty"`
}

// BookSlot атомарно занимает свободный активный слот. При гонке двух
// запросов ровно один получает слот, второй — ErrSlotAlreadyBooked.
func (s *BookingService) BookSlot(ctx context.Context, slotID, userID int, input BookSlotInput) (*models.CourtSlot, error) {
	err := s.slotRepo.Book(ctx, slotID, userID, input.CategoryID, input.OpponentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtSlotUnavailable) {
			// UPDATE не затронул строк: перечитываем слот, чтобы назвать
			// причину отказа.
			return nil, s.classifyBookingFailure(ctx, slotID)
		}
		return nil, fmt.Errorf("ошибка бронирования слота %d: %w", slotID, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("слот %d забронирован, но не удалось перечитать: %w", slotID, err)
	}

	s.notifyBooking(ctx, models.NotificationBooking, slot, userID)
	s.sendConfirmation(ctx, slot, userID)
	return slot, nil
}

func (s *BookingService) classifyBookingFailure(ctx context.Context, slotID int) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("ошибка классификации отказа брони слота %d: %w", slotID, err)
	}
	if !slot.IsActive {
		return ErrSlotInactive
	}
	if slot.IsBooked {
		return ErrSlotAlreadyBooked
	}
	// Состояние успело измениться между UPDATE и перечитыванием —
	// слот снова свободен. Для вызывающего это выглядит как проигранная гонка.
	return ErrSlotAlreadyBooked
}

// CancelBooking снимает бронь. Разрешено админу или владельцу брони.
// Отмена не обязана быть атомарной против новой брони: они работают с
// непересекающимися исходными состояниями слота.
func (s *BookingService) CancelBooking(ctx context.Context, slotID, requesterID int, isAdmin bool) error {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("ошибка загрузки слота %d: %w", slotID, err)
	}

	if !isAdmin && (slot.BookedBy == nil || *slot.BookedBy != requesterID) {
		return ErrForbiddenOperation
	}

	if err := s.slotRepo.ClearBooking(ctx, slotID); err != nil {
		return fmt.Errorf("ошибка отмены брони слота %d: %w", slotID, err)
	}

	s.notifyBooking(ctx, models.NotificationCancellation, slot, requesterID)
	return nil
}

// ToggleSlotActive — админский переключатель, не зависящий от брони.
func (s *BookingService) ToggleSlotActive(ctx context.Context, slotID int, active bool) error {
	if err := s.slotRepo.SetActive(ctx, slotID, active); err != nil {
		if errors.Is(err, repositories.ErrCourtSlotNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("ошибка переключения слота %d: %w", slotID, err)
	}
	return nil
}

// DeleteSlot удаляет слот (админ).
func (s *BookingService) DeleteSlot(ctx context.Context, slotID int) error {
	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, repositories.ErrCourtSlotNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	return nil
}

// ListSlots возвращает слоты за день date, либо все будущие, если date нулевой.
func (s *BookingService) ListSlots(ctx context.Context, date *time.Time) ([]*models.CourtSlot, error) {
	var from, to time.Time
	if date != nil {
		y, m, d := date.UTC().Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 0, 1)
	} else {
		from = time.Now().UTC()
		to = from.AddDate(1, 0, 0)
	}
	return s.slotRepo.ListByRange(ctx, from, to)
}

func (s *BookingService) notifyBooking(ctx context.Context, kind models.NotificationKind, slot *models.CourtSlot, userID int) {
	userName := fmt.Sprintf("user %d", userID)
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		userName = user.Name
	}

	message := fmt.Sprintf("New court booking by %s for %s", userName, slot.CourtName)
	if kind == models.NotificationCancellation {
		message = fmt.Sprintf("Booking cancelled by %s for %s", userName, slot.CourtName)
	}

	payload, err := json.Marshal(models.BookingPayload{SlotID: slot.ID, UserID: userID})
	if err != nil {
		s.logger.Error("failed to marshal booking notification payload", slog.Any("error", err))
		return
	}
	payloadStr := string(payload)

	n := &models.Notification{
		Kind:        kind,
		Message:     message,
		PayloadJSON: &payloadStr,
	}
	// Уведомление — best effort: его потеря не должна ломать бронь.
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error("failed to create booking notification",
			slog.Int("slot_id", slot.ID), slog.Any("error", err))
	}
}

func (s *BookingService) sendConfirmation(ctx context.Context, slot *models.CourtSlot, userID int) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}
	if err := s.emailService.SendBookingConfirmation(user.Email, slot); err != nil {
		s.logger.Error("failed to send booking confirmation email",
			slog.Int("slot_id", slot.ID), slog.Any("error", err))
	}
}
