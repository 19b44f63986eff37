package auth

import (
	"context"

	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

// UserContext identifies the authenticated caller of a request.
type UserContext struct {
	UserID    string
	SessionID string
	Role      string
}

type userContextKey struct{}

// WithUserContext returns a copy of ctx carrying uc.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}

// GetUserContext returns the caller attached by the auth middleware.
func GetUserContext(ctx context.Context) (*UserContext, error) {
	uc, ok := ctx.Value(userContextKey{}).(*UserContext)
	if !ok || uc == nil || uc.UserID == "" {
		return nil, errors.Unauthenticated("no authenticated user")
	}
	return uc, nil
}

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*UserContext, error)
}
