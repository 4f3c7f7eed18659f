package ports

import (
	"context"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

// ApplicationRepository defines persistence operations for loan applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Application, error)
	ListAll(ctx context.Context) ([]*domain.Application, error)
	// DeleteNewestPending removes the most recently created pending
	// application owned by userID. Returns domain.ErrApplicationNotFound
	// when the user has no pending application.
	DeleteNewestPending(ctx context.Context, userID string) error
	// UpdateStatusByUser transitions every application of userID currently
	// in status from to status to, returning the number of documents
	// modified. Best-effort: a single multi-document update statement,
	// no cross-document transaction.
	UpdateStatusByUser(ctx context.Context, userID string, from, to domain.ApplicationStatus) (int64, error)
}
