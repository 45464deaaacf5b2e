package apperror

import "errors"

// Terminal, user-visible outcomes. None of these are retried by the
// service; each reflects a real state conflict, not a transient fault.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrNotFound          = errors.New("not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrAlreadyRedeemed   = errors.New("already redeemed")
)
