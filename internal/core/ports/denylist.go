package ports

import (
	"context"
	"time"
)

// TokenDenylist revokes access tokens ahead of their natural expiry. Entries
// only need to live for the residual lifetime of the token they revoke.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
