package constant

// slog attribute keys used across the service.
const (
	Error   = "error"
	UserID  = "user_id"
	RoomID  = "room_id"
	EventID = "event_id"
	USN     = "usn"
)
