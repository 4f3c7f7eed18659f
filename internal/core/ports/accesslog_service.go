package ports

import (
	"context"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

// AccessLogService records and lists access events.
type AccessLogService interface {
	// Record appends a login (login=true) or logout event for userID.
	Record(ctx context.Context, userID string, login bool) (*domain.AccessLog, error)
	// ListAll returns every event with owners resolved. Admin only.
	ListAll(ctx context.Context) ([]*domain.AccessLog, error)
}
