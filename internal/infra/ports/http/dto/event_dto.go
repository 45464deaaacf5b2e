package dto

import "github.com/google/uuid"

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	EventDate   string `json:"event_date"`
}

type RegisterForEventRequest struct {
	EventID uuid.UUID `json:"event_id"`
}

type CheckinRequest struct {
	Token string `json:"token"`
}
