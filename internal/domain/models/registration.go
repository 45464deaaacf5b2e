package models

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCheckedIn  RegistrationStatus = "checked_in"
)

// EventRegistration tracks one user's claim on one event. Status only
// ever moves registered -> checked_in; checked_in is terminal.
type EventRegistration struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	EventID     uuid.UUID          `json:"event_id" db:"event_id"`
	UserID      uuid.UUID          `json:"user_id" db:"user_id"`
	Status      RegistrationStatus `json:"status" db:"status"`
	CheckedInAt *time.Time         `json:"checked_in_at" db:"checked_in_at"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

func NewEventRegistration(userID, eventID uuid.UUID) *EventRegistration {
	return &EventRegistration{
		ID:        uuid.New(),
		EventID:   eventID,
		UserID:    userID,
		Status:    RegistrationRegistered,
		CreatedAt: time.Now(),
	}
}
