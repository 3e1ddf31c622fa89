package user

import (
	"time"

	"scholarhub/internal/common"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           common.UUID `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
