package domain

import (
	"errors"
	"time"
)

// Role constrains the access level assigned to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role belongs to the enumerated set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for managed user records.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the optional fields of a partial update. Nil fields
// are left untouched by the store.
type UserPatch struct {
	Name         *string
	Email        *string
	Phone        *string
	PasswordHash *string
	Role         *string
}

// ErrEmailTaken signals a creation that would duplicate a unique email address.
var ErrEmailTaken = errors.New("email already registered")
