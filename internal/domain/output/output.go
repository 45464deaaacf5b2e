package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/jssrooms/backend/internal/domain/models"
)

// CheckinResult is what a scanner station displays after a scan.
type CheckinResult struct {
	UserID      uuid.UUID `json:"user_id"`
	EventID     uuid.UUID `json:"event_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// RegistrationTicket pairs a registration with its token value so the
// client can re-render the QR code without a separate fetch.
type RegistrationTicket struct {
	Registration models.EventRegistration `json:"registration"`
	TokenValue   string                   `json:"qr_code_token"`
}
