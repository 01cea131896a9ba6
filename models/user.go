package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. PasswordHash holds the bcrypt digest;
// the plaintext is never stored or serialized.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
