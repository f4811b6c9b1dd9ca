package authservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// Register creates an account and signs it in.
	Register(ctx context.Context, email, password string) (*Session, error)

	// Login checks credentials and starts a session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// ValidateToken validates a session token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// Session is a signed session token for a user.
type Session struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}
