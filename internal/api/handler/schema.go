package handler

import "github.com/creditdesk/loan-system/internal/core/domain"

// messageResponse is the standard envelope for all non-2xx responses and
// for operations whose success payload is a plain message.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth / account requests ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Number   string `json:"number"   validate:"required"`
	Passport string `json:"passport" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Number   string `json:"number"   validate:"required"`
	Passport string `json:"passport" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type banRequest struct {
	Passport string `json:"passport" validate:"required"`
}

// authResponse carries the account plus a fresh bearer token. The user's
// password hash is structurally excluded from serialization.
type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// --- Application requests ---

// submitApplicationRequest intentionally carries no validate tags beyond
// JSON shape: field values are stored as the caller supplies them, and a
// status field is not accepted at all: submissions always start pending.
type submitApplicationRequest struct {
	Credit    float64 `json:"credit"`
	Period    int     `json:"period"`
	Salary    float64 `json:"salary"`
	Expenses  float64 `json:"expenses"`
	Purpose   string  `json:"purpose"`
	Percent   float64 `json:"percent"`
	Payment   float64 `json:"payment"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type updateStatusRequest struct {
	Passport  string `json:"passport"   validate:"required"`
	NewStatus int    `json:"new_status" validate:"required,oneof=1 2 3"`
}

type updateStatusResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// --- Access log requests ---

type createLogRequest struct {
	Type string `json:"type" validate:"required,oneof=login logout"`
}
