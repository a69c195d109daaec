package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID
	Body      string
	UserID    uuid.UUID
	PostID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
