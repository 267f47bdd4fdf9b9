// Package ctxkeys holds the shared context keys for the API layer.
// Extracted to a leaf package to avoid import cycles between api and api/handlers.
package ctxkeys

import "context"

// Key is the unexported named type for all API context keys.
// context.Value compares both type and value, so a named type cannot collide
// with string keys from other packages.
type Key string

const (
	// UserID is the context key for the authenticated user.
	// Injected by the auth middleware from JWT claims.
	UserID Key = "user_id"

	// Role is the context key for the authenticated user's role.
	// Selects the prompt variant and gates admin-only endpoints.
	Role Key = "role"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// Value reads a ctxkeys.Key value from the context, empty when absent.
func Value(ctx context.Context, key Key) string {
	v, _ := ctx.Value(key).(string)
	return v
}
