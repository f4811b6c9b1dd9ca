package authdomain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClaims_IsExpired(t *testing.T) {
	assert.True(t, (&Claims{ExpiresAt: time.Now().Add(-time.Minute)}).IsExpired())
	assert.False(t, (&Claims{ExpiresAt: time.Now().Add(time.Hour)}).IsExpired())
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	_, ok := ClaimsFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, UserIDFromContext(ctx))

	claims := &Claims{UserID: uuid.New(), Email: "chris@example.com"}
	ctx = ContextWithClaims(ctx, claims)

	got, ok := ClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, claims, got)
	assert.Equal(t, claims.UserID, UserIDFromContext(ctx))
}
