package input

import "github.com/google/uuid"

type CreateRoomInput struct {
	Title           string
	Description     string
	OwnerID         uuid.UUID
	DurationMinutes int
}

type CreateEventInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
	Location    string
	Capacity    int
	OrganizerID uuid.UUID
	EventDate   string
}
