package dto

type CreateRoomRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CloseRoomRequest struct {
	RoomID string `json:"room_id"`
}
