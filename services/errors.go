package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrPartnerRequired        = errors.New("doubles registration requires a partner")
	ErrPartnerNotAllowed      = errors.New("singles registration must not have a partner")
	ErrPartnerSelfPairing     = errors.New("partner must be a different user")
	ErrMatchAlreadyCompleted  = errors.New("match score has already been recorded")
	ErrMatchSelfPairing       = errors.New("match participants must differ")
	ErrParticipantHasMatches  = errors.New("participant has matches and cannot be removed")
	ErrTournamentInvalidDates = errors.New("tournament end date must be after start date")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrCategoryTypeInvalid    = errors.New("category type must be singles or doubles")

	// Ошибки бронирования — типизированные, по ним UI различает причину отказа.
	ErrSlotNotFound      = errors.New("court slot not found")
	ErrSlotInactive      = errors.New("court slot is disabled")
	ErrSlotAlreadyBooked = errors.New("court slot is already booked")

	// Ошибки конфликтов
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Функциональность выключена конфигурацией развёртывания
	ErrPosterUploadsDisabled = errors.New("poster uploads are not configured")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled        = errors.New("account is disabled")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound        = errors.New("user not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrParticipantNotFound = errors.New("participant registration not found")
	ErrMatchNotFound       = errors.New("match not found")
)
