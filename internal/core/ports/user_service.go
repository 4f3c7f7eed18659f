package ports

import (
	"context"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Surname  string
	Number   string
	Passport string
	Email    string
	Password string
}

// UpdateProfileInput carries the mutable identity fields of an account.
type UpdateProfileInput struct {
	Name     string
	Surname  string
	Number   string
	Passport string
	Email    string
}

// AuthResult is returned by operations that issue a bearer token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// UserService defines account and credential use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (*domain.User, error)
	ListAccounts(ctx context.Context) ([]*domain.User, error)
	// ToggleBan flips the banned flag of the user matching passport.
	ToggleBan(ctx context.Context, passport string) (*domain.User, error)
	// CreateAdmin is Register with the administrator flag forced on.
	CreateAdmin(ctx context.Context, input RegisterInput) (*AuthResult, error)
}
