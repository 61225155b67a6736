package identity

import (
	"context"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for the session identity.
	Key ContextKey = "identity"
)

// Identity is the editor name asserted by an active session. It is placed
// on the request context by the session middleware; handlers never read
// the cookie themselves.
type Identity struct {
	EditorName string
}

// Get retrieves the Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores the Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
