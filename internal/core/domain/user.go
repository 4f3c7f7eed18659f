package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrPassportTaken      = errors.New("passport already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBanned         = errors.New("account is banned")
)

// User models an account in the system. PasswordHash is never serialized:
// every endpoint that embeds a user (directly or as a resolved owner
// reference) relies on the json:"-" tag to strip it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Number       string    `json:"number"`
	Passport     string    `json:"passport"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsBanned     bool      `json:"is_banned"`
	Role         bool      `json:"role"` // true = administrator
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleName maps the administrator flag to the role string carried in
// token claims and checked by the RBAC middleware.
func (u *User) RoleName() string {
	if u.Role {
		return RoleAdmin
	}
	return RoleMember
}
