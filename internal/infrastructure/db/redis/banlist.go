package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BanList caches banned user ids so the auth middleware can reject
// outstanding bearer tokens immediately after a ban.
// Key format: ban:<user_id>
type BanList struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBanList creates a BanList wrapping the given Redis client. ttl should
// match the bearer token TTL: once every token issued before the ban has
// expired, the cache entry is no longer needed.
func NewBanList(client *redis.Client, ttl time.Duration) *BanList {
	return &BanList{client: client, ttl: ttl}
}

// Ban records that the user is banned (expires after ttl).
func (b *BanList) Ban(ctx context.Context, userID string) error {
	return b.client.Set(ctx, b.key(userID), "1", b.ttl).Err()
}

// Unban clears the ban marker.
func (b *BanList) Unban(ctx context.Context, userID string) error {
	return b.client.Del(ctx, b.key(userID)).Err()
}

// IsBanned reports whether the user is currently marked banned.
func (b *BanList) IsBanned(ctx context.Context, userID string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("ban check: %w", err)
	}
	return n > 0, nil
}

func (b *BanList) key(userID string) string {
	return "ban:" + userID
}
