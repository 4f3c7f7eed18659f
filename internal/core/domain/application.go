package domain

import (
	"errors"
	"time"
)

// ApplicationStatus is the lifecycle state of a loan application.
type ApplicationStatus int

const (
	StatusApproved ApplicationStatus = 1
	StatusPending  ApplicationStatus = 2 // assigned at creation, awaiting decision
	StatusRejected ApplicationStatus = 3
)

var ErrApplicationNotFound = errors.New("active application not found")
var ErrInvalidStatus = errors.New("invalid application status")

// Valid reports whether s is one of the known status values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Application is a credit request owned by exactly one user. All numeric
// and date fields are caller-supplied and stored as-is; only Status is
// controlled by the system (pending at creation, mutated by admins).
type Application struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Credit    float64           `json:"credit"`
	Period    int               `json:"period"`
	Salary    float64           `json:"salary"`
	Expenses  float64           `json:"expenses"`
	Purpose   string            `json:"purpose"`
	Percent   float64           `json:"percent"`
	Payment   float64           `json:"payment"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`

	// User is the resolved owner, populated by list views. Never stored.
	User *User `json:"user,omitempty"`
}
