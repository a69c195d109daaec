// Package models defines the persistent records of the blog service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Password holds the bcrypt verifier
// string (hash+salt+cost), never the cleartext.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
