package authjwt

import (
	"time"

	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
)

// Provider defines the interface for session token operations.
type Provider interface {
	// GenerateToken creates a signed token for the given claims.
	GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error)

	// ValidateToken validates a token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
