package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist marks revoked token identifiers in Redis. Each entry carries
// a TTL equal to the token's remaining lifetime, so the denylist never
// outgrows the set of tokens that are still otherwise valid.
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke writes the jti with the given TTL. Revoking an already revoked
// jti just refreshes the entry; revocation is absorbing either way.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}

// IsRevoked reports whether the jti is currently denylisted.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(jti string) string {
	return "denylist:" + jti
}
