// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// UserKey is the context key for the acting user ID.
type UserKey struct{}

// LocalUser is the identity used when no user has been attached, which is
// always the case in single-user local mode.
const LocalUser = "local"

// WithUserID returns a context with the user ID embedded.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserKey{}, userID)
}

// UserFromContext returns the user ID from context, or empty string if not set.
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(UserKey{}).(string); ok {
		return v
	}
	return ""
}

// UserOrLocal returns the user ID from context, falling back to LocalUser.
func UserOrLocal(ctx context.Context) string {
	if id := UserFromContext(ctx); id != "" {
		return id
	}
	return LocalUser
}
