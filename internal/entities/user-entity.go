package entities

import (
	"strings"
	"time"
)

// Roles form a closed set carried in the JWT; nothing derives roles from
// username substrings.
const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleStudent   = "student"
	RoleStaff     = "staff"
	RoleGuest     = "guest"
	RoleUser      = "user"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleProfessor, RoleStudent, RoleStaff, RoleGuest, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uint64
	Username     string
	FirstName    *string
	LastName     *string
	Email        *string
	Role         string
	Enabled      bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName prefers "First Last" and falls back to the username.
func (u User) DisplayName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return u.Username
	}
	return strings.Join(parts, " ")
}
