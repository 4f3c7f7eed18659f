package ports

import (
	"context"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

// AccessLogRepository defines persistence for login/logout events.
// The log is append-only: no update or delete operations exist.
type AccessLogRepository interface {
	Create(ctx context.Context, entry *domain.AccessLog) (*domain.AccessLog, error)
	ListAll(ctx context.Context) ([]*domain.AccessLog, error)
}
