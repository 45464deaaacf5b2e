package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	USN       string    `json:"usn" db:"usn"`
	Name      string    `json:"name" db:"name"`
	Role      string    `json:"role" db:"role"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewUser(usn, name, role string) *User {
	if role == "" {
		role = RoleUser
	}

	return &User{
		ID:        uuid.New(),
		USN:       usn,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}
}
