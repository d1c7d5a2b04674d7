package auth

import (
	"context"

	"github.com/vaughan-dsouza/rentwheels/internal/models"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	User    *models.User
	TokenID string // the access token that authenticated this request
}

// Can reports whether the principal's role holds p.
func (p *Principal) Can(perm models.Permission) bool {
	return p != nil && p.User != nil && p.User.Role.Can(perm)
}

// Owns reports whether the principal is the user with id.
func (p *Principal) Owns(userID int64) bool {
	return p != nil && p.User != nil && p.User.ID == userID
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
