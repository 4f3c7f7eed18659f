package ports

import "context"

// BanList caches banned user ids so outstanding bearer tokens are
// rejected at the middleware without waiting for the next login.
type BanList interface {
	Ban(ctx context.Context, userID string) error
	Unban(ctx context.Context, userID string) error
	IsBanned(ctx context.Context, userID string) (bool, error)
}
