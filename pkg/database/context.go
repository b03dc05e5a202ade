package database

import (
	"context"
	"database/sql"
)

type contextKey string

// scopeKey is the context key for the active user's database scope.
const scopeKey contextKey = "userScope"

// Scope binds the active user's open database to their identity. Every
// repository call requires a Scope in context; there is no package-level
// database handle.
type Scope struct {
	DB     *sql.DB
	UserID string
}

// GetScope retrieves the user's database scope from context.
// Returns nil and false if not present.
func GetScope(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey).(*Scope)
	return scope, ok
}

// SetScope stores the user's database scope in context.
func SetScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}
