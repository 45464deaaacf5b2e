package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/models"
)

const (
	FrameMessage    = "message"
	FrameRoomClosed = "room_closed"
)

// MessageFrame is one outbound websocket frame. Chat messages carry
// the full payload; the terminal room_closed notice carries only Type.
type MessageFrame struct {
	Type         string    `json:"type"`
	SenderID     uuid.UUID `json:"sender_id,omitempty"`
	SenderHandle string    `json:"sender_handle,omitempty"`
	Content      string    `json:"content,omitempty"`
	SentAt       time.Time `json:"sent_at,omitzero"`
	Sequence     uint64    `json:"sequence,omitempty"`
}

func NewMessageFrame(msg models.Message) MessageFrame {
	return MessageFrame{
		Type:         FrameMessage,
		SenderID:     msg.SenderID,
		SenderHandle: msg.SenderHandle,
		Content:      msg.Content,
		SentAt:       msg.SentAt,
		Sequence:     msg.Sequence,
	}
}
