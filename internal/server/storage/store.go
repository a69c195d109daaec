// Package storage implements the blob store holding post images: opaque
// byte streams with a recorded content-type, keyed by UUID.
package storage

import (
	"context"

	"github.com/google/uuid"
)

// Store is the capability contract services depend on. The concrete
// client is chosen by the composition root.
type Store interface {
	// Save uploads content under a freshly minted key and returns it.
	Save(ctx context.Context, content []byte, contentType string) (uuid.UUID, error)

	// Get returns the stored bytes and content-type, or
	// common.ErrorNotFound if no object exists under id.
	Get(ctx context.Context, id uuid.UUID) ([]byte, string, error)

	// Delete removes the object under id.
	Delete(ctx context.Context, id uuid.UUID) error
}
