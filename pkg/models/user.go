// Package models contains domain types for sitedesk-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a person working on construction projects. Users are rows
// inside a per-identity database; the database itself is keyed by the
// normalized display name (see database.DeriveUserID).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
