package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of a user.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

type User struct {
	UserID       uuid.UUID `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	AnswerHash   string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
