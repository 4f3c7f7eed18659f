package ports

import (
	"context"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

// SubmitApplicationInput carries the caller-supplied fields of a new loan
// application. Status is not part of the input: submissions always start
// pending regardless of what the client sends.
type SubmitApplicationInput struct {
	UserID    string
	Credit    float64
	Period    int
	Salary    float64
	Expenses  float64
	Purpose   string
	Percent   float64
	Payment   float64
	StartDate string
	EndDate   string
}

// ApplicationService defines loan-application use cases.
type ApplicationService interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*domain.Application, error)
	// ListByOwner returns the caller's applications with the owner resolved inline.
	ListByOwner(ctx context.Context, userID string) ([]*domain.Application, error)
	DeleteActive(ctx context.Context, userID string) error
	// ListAll returns every application with owners resolved. Admin only.
	ListAll(ctx context.Context) ([]*domain.Application, error)
	// UpdateStatusByPassport transitions all pending applications of the
	// user matching passport to status, returning how many were updated.
	// Zero pending applications is a successful no-op.
	UpdateStatusByPassport(ctx context.Context, passport string, status domain.ApplicationStatus) (int64, error)
}
