package ports

import (
	"context"

	"github.com/creditdesk/loan-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Find* methods return domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPassport(ctx context.Context, passport string) (*domain.User, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	ExistsByPassport(ctx context.Context, passport string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
