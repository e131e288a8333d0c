package internal

import (
	"context"
)

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

// Identity is the resolved caller attached to the request context by the
// auth middleware after token verification.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	if id, ok := ctx.Value(ContextIdentityKey).(*Identity); ok && id != nil {
		return id, true
	}
	return nil, false
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, id)
}
