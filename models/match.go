package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
)

type MatchRound string

const (
	RoundGroup     MatchRound = "group"
	RoundSemiFinal MatchRound = "semi-final"
	RoundFinal     MatchRound = "final"
)

// SetScore — сырой счёт одного сета. Nil означает, что значение не введено
// (сет не игрался или тай-брейка не было).
type SetScore struct {
	P1Games    *int `json:"p1_games,omitempty"`
	P2Games    *int `json:"p2_games,omitempty"`
	P1Tiebreak *int `json:"p1_tiebreak,omitempty"`
	P2Tiebreak *int `json:"p2_tiebreak,omitempty"`
}

// Match хранит сырые счета по сетам, а не только производного победителя:
// итог матча и таблицы должны пересчитываться из этих данных в любой момент.
type Match struct {
	ID             int         `json:"id"`
	CategoryID     int         `json:"category_id"`
	Participant1ID int         `json:"participant1_id"`
	Participant2ID int         `json:"participant2_id"`
	Round          MatchRound  `json:"round"`
	Status         MatchStatus `json:"status"`
	Date           *time.Time  `json:"date,omitempty"`
	WinnerID       *int        `json:"winner_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`

	Set1 SetScore `json:"set1"`
	Set2 SetScore `json:"set2"`
	Set3 SetScore `json:"set3"`

	Participant1 *Participant `json:"participant1,omitempty"`
	Participant2 *Participant `json:"participant2,omitempty"`
}

// SetScores возвращает сеты матча в порядке розыгрыша.
func (m *Match) SetScores() [3]SetScore {
	return [3]SetScore{m.Set1, m.Set2, m.Set3}
}

// Involves сообщает, играет ли участник в этом матче.
func (m *Match) Involves(participantID int) bool {
	return m.Participant1ID == participantID || m.Participant2ID == participantID
}
