package entities

import (
	"strings"

	"service-desk/pkg/constants"
	"service-desk/pkg/types"
)

type User struct {
	ID           int64          `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Login        string         `json:"login" db:"login"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Role         constants.Role `json:"role" db:"role"`

	types.BaseEntity
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Actor is the identity an operation runs on behalf of. It is decoded from
// the access token per request and passed explicitly to every service call.
type Actor struct {
	ID   int64          `json:"id"`
	Name string         `json:"name"`
	Role constants.Role `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a Actor) IsTechnician() bool {
	return a.Role == constants.RoleTechnician
}

// SameName compares display names the way historical records were written:
// trimmed and case-insensitive.
func SameName(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
