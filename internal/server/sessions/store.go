// Package sessions implements the ephemeral token → user identity mapping.
// A token is issued at sign-in, resolves to exactly one user id until it is
// revoked or its TTL elapses, and is permanently unresolvable afterwards.
// Expiry is enforced lazily by the backing store; there is no sweeper.
package sessions

import (
	"context"
	"time"
)

type Store interface {
	// Open establishes the connection to the backing store. Readiness must
	// be confirmed via Ping before accepting traffic.
	Open(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Create issues a fresh opaque token mapped to userID with absolute
	// expiry now+ttl.
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)

	// Resolve returns the user id for a live token, or common.ErrorNotFound
	// when the token is unknown, revoked or expired.
	Resolve(ctx context.Context, token string) (string, error)

	// Revoke deletes the mapping. Revoking an absent token is not an error.
	Revoke(ctx context.Context, token string) error
}
