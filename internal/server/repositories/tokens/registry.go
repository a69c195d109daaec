// Package tokens implements the live token registry: a TTL'd key-value
// record per honored token. The registry is authoritative for revocation;
// expiry is handled by the backend's TTL.
package tokens

import (
	"context"
	"time"
)

// Registry stores encoded token strings under opaque keys with a TTL.
type Registry interface {
	// Get returns the stored token, or common.ErrorNotFound if the key is
	// absent (revoked or expired).
	Get(ctx context.Context, key string) (string, error)

	// Save writes the token under key, expiring after ttl.
	Save(ctx context.Context, key string, token string, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
