package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/tennis-system/middleware"
	"github.com/Dosada05/tennis-system/schedule"
	"github.com/Dosada05/tennis-system/services"
)

type BookingHandler struct {
	bookingService  *services.BookingService
	scheduleService *services.ScheduleService
}

func NewBookingHandler(bookingService *services.BookingService, scheduleService *services.ScheduleService) *BookingHandler {
	return &BookingHandler{
		bookingService:  bookingService,
		scheduleService: scheduleService,
	}
}

// ListSlots возвращает слоты за день (?date=YYYY-MM-DD) либо все предстоящие.
func (h *BookingHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
			return
		}
		date = &parsed
	}

	slots, err := h.bookingService.ListSlots(r.Context(), date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"slots": slots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	slotID, err := idParam(r, "slotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.BookSlotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	slot, err := h.bookingService.BookSlot(r.Context(), slotID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"slot": slot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelBooking снимает бронь. Обычный пользователь может снять только
// свою, администратор — любую.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	slotID, err := idParam(r, "slotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bookingService.CancelBooking(r.Context(), slotID, userID, middleware.IsAdmin(r.Context())); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) SetSlotActive(w http.ResponseWriter, r *http.Request) {
	slotID, err := idParam(r, "slotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.IsActive == nil {
		badRequestResponse(w, r, errors.New("is_active is required"))
		return
	}

	if err := h.bookingService.ToggleSlotActive(r.Context(), slotID, *input.IsActive); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := idParam(r, "slotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.bookingService.DeleteSlot(r.Context(), slotID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateSchedule разворачивает недельный шаблон корта в конкретные слоты.
// Уже существующие слоты (тот же корт и время начала) не дублируются.
func (h *BookingHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CourtName             string           `json:"court_name"`
		StartDate             time.Time        `json:"start_date"`
		EndDate               time.Time        `json:"end_date"`
		Groups                []schedule.Group `json:"groups"`
		SlotDurationMinutes   int              `json:"slot_duration_minutes"`
		TimezoneOffsetMinutes int              `json:"timezone_offset_minutes"`
		TournamentID          *int             `json:"tournament_id,omitempty"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	created, err := h.scheduleService.CreateSchedule(r.Context(), schedule.Params{
		CourtName:             input.CourtName,
		StartDate:             input.StartDate,
		EndDate:               input.EndDate,
		Groups:                input.Groups,
		SlotDurationMinutes:   input.SlotDurationMinutes,
		TimezoneOffsetMinutes: input.TimezoneOffsetMinutes,
		TournamentID:          input.TournamentID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"created": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
