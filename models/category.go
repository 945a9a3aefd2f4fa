package models

import "time"

type CategoryType string

const (
	CategorySingles CategoryType = "singles"
	CategoryDoubles CategoryType = "doubles"
)

// Category — разряд турнира ("Men's Singles", "40+ Doubles" и т.д.).
// Format — свободная текстовая метка ("mini-set", "full-set"), движок её не интерпретирует.
type Category struct {
	ID           int          `json:"id" db:"id"`
	TournamentID int          `json:"tournament_id" db:"tournament_id"`
	Name         string       `json:"name" db:"name"`
	Type         CategoryType `json:"type" db:"type"`
	Format       *string      `json:"format,omitempty" db:"format"`
	Description  *string      `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`

	Participants []Participant `json:"participants,omitempty" db:"-"`
	Matches      []Match       `json:"matches,omitempty" db:"-"`
}
