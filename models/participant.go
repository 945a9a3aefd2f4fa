package models

import "time"

// Participant — одна соревновательная единица внутри категории:
// одиночный игрок или фиксированная пара (PartnerID заполнен только для doubles).
type Participant struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	UserID     int       `json:"user_id"`
	PartnerID  *int      `json:"partner_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	User    *User `json:"user,omitempty"`
	Partner *User `json:"partner,omitempty"`
}

// DisplayName собирает имя для таблиц и уведомлений: "A / B" для пары.
func (p *Participant) DisplayName() string {
	if p == nil || p.User == nil {
		return ""
	}
	if p.Partner != nil {
		return p.User.Name + " / " + p.Partner.Name
	}
	return p.User.Name
}
