package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is read-mostly catalogue data. Capacity <= 0 means unlimited.
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Location    string    `json:"location" db:"location"`
	Capacity    int       `json:"capacity" db:"capacity"`
	OrganizerID uuid.UUID `json:"organizer_id" db:"organizer_id"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
