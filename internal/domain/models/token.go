package models

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// AccessToken is a single-use credential proving a valid registration.
// Exactly one token exists per registration, minted when the
// registration is created. The value is the QR payload handed to the
// registered user; it is never reissued.
type AccessToken struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	RegistrationID uuid.UUID  `json:"registration_id" db:"registration_id"`
	Value          string     `json:"value" db:"value"`
	IssuedAt       time.Time  `json:"issued_at" db:"issued_at"`
	ConsumedAt     *time.Time `json:"consumed_at" db:"consumed_at"`
}

func NewAccessToken(registrationID uuid.UUID) *AccessToken {
	return &AccessToken{
		ID:             uuid.New(),
		RegistrationID: registrationID,
		Value:          newTokenValue(),
		IssuedAt:       time.Now(),
	}
}

func (t *AccessToken) Consumed() bool {
	return t.ConsumedAt != nil
}

// newTokenValue returns 32 bytes of crypto randomness, URL-safe
// base64 so the value survives being stuffed into a QR code or a URL.
func newTokenValue() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read only fails if the platform entropy source is broken.
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(buf)
}
