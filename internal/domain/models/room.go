package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	RoomActive  RoomStatus = "active"
	RoomExpired RoomStatus = "expired"
	RoomClosed  RoomStatus = "closed"
)

// Room is a time-boxed chat session. Expired and Closed are terminal:
// no joins and no messages once a room leaves Active.
type Room struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	DurationMinutes int        `json:"duration_minutes"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	Status          RoomStatus `json:"status"`
}

func NewRoom(title, description string, ownerID uuid.UUID, durationMinutes int, now time.Time) *Room {
	return &Room{
		ID:              NewRoomID(),
		Title:           title,
		Description:     description,
		OwnerID:         ownerID,
		DurationMinutes: durationMinutes,
		CreatedAt:       now,
		ExpiresAt:       now.Add(time.Duration(durationMinutes) * time.Minute),
		Status:          RoomActive,
	}
}

// NewRoomID returns a 6-digit numeric room ID, short enough to read
// out loud or type from a projector slide.
func NewRoomID() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// ExpiredBy reports whether the room's deadline has passed at t.
func (r *Room) ExpiredBy(t time.Time) bool {
	return !t.Before(r.ExpiresAt)
}

// AcceptsTrafficAt reports whether the room takes joins and messages at t.
func (r *Room) AcceptsTrafficAt(t time.Time) bool {
	return r.Status == RoomActive && !r.ExpiredBy(t)
}
