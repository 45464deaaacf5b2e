package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message. Messages are ephemeral: they exist
// only in the fan-out path and are never written to durable storage.
// Sequence is strictly increasing per room and defines display order.
type Message struct {
	RoomID       string    `json:"room_id"`
	SenderID     uuid.UUID `json:"sender_id"`
	SenderHandle string    `json:"sender_handle"`
	Content      string    `json:"content"`
	SentAt       time.Time `json:"sent_at"`
	Sequence     uint64    `json:"sequence"`
}
