package models

import (
	"encoding/json"
	"time"
)

type NotificationKind string

const (
	NotificationBooking      NotificationKind = "booking"
	NotificationCancellation NotificationKind = "cancellation"
	NotificationRegistration NotificationKind = "registration"
)

// BookingPayload — данные уведомления о брони/отмене.
type BookingPayload struct {
	SlotID int `json:"slot_id"`
	UserID int `json:"user_id"`
}

// RegistrationPayload — данные уведомления о регистрации в категории.
type RegistrationPayload struct {
	CategoryID    int `json:"category_id"`
	ParticipantID int `json:"participant_id"`
}

// Notification хранит типизированный payload как JSON. Каждому Kind
// соответствует своя структура payload, а не произвольный blob.
type Notification struct {
	ID          int              `json:"id"`
	Kind        NotificationKind `json:"kind"`
	Message     string           `json:"message"`
	PayloadJSON *string          `json:"-"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`

	Payload interface{} `json:"payload,omitempty"`
}

// DecodePayload восстанавливает типизированный payload из JSON по Kind.
func (n *Notification) DecodePayload() error {
	if n.PayloadJSON == nil || *n.PayloadJSON == "" {
		return nil
	}
	switch n.Kind {
	case NotificationBooking, NotificationCancellation:
		var p BookingPayload
		if err := json.Unmarshal([]byte(*n.PayloadJSON), &p); err != nil {
			return err
		}
		n.Payload = p
	case NotificationRegistration:
		var p RegistrationPayload
		if err := json.Unmarshal([]byte(*n.PayloadJSON), &p); err != nil {
			return err
		}
		n.Payload = p
	default:
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(*n.PayloadJSON), &raw); err != nil {
			return err
		}
		n.Payload = raw
	}
	return nil
}
