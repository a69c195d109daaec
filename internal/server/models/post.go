package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published article. ImageID is uuid.Nil when no image is
// attached; otherwise it keys an object in the blob store.
type Post struct {
	ID        uuid.UUID
	Title     string
	Body      string
	ImageID   uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
