package models

import "time"

// Notice — объявление клуба, показываемое баннером на главной странице.
// Активным держится не более одного объявления одновременно.
type Notice struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
