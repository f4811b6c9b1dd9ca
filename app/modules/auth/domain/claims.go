package authdomain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Claims represents the domain model for a signed-in session.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

type claimsKey struct{}

// ContextWithClaims attaches the session claims to ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the session claims set by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the signed-in user's id, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return uuid.Nil
}
