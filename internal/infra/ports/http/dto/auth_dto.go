package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	USN      string `json:"usn"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	USN      string `json:"usn"`
	Password string `json:"password"`
}

type GetMeResponse struct {
	ID   uuid.UUID `json:"id"`
	USN  string    `json:"usn"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}
