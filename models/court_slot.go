package models

import "time"

// CourtSlot — бронируемое окно корта. StartTime/EndTime хранятся в UTC.
// IsActive — независимый админский переключатель: слот можно выключить
// вне зависимости от того, забронирован он или нет.
type CourtSlot struct {
	ID           int       `json:"id"`
	TournamentID *int      `json:"tournament_id,omitempty"`
	CourtName    string    `json:"court_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	IsBooked     bool      `json:"is_booked"`
	IsActive     bool      `json:"is_active"`
	BookedBy     *int      `json:"booked_by,omitempty"`
	CategoryID   *int      `json:"category_id,omitempty"`
	OpponentID   *int      `json:"opponent_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	BookedByUser *User `json:"booked_by_user,omitempty"`
}
