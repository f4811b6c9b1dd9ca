package authhandlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	authservice "github.com/runmoore/scrabble-score/app/modules/auth/application"
	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	RegisterFunc      func(ctx context.Context, email, password string) (*authservice.Session, error)
	LoginFunc         func(ctx context.Context, email, password string) (*authservice.Session, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

func fakeSession(email string) *authservice.Session {
	return &authservice.Session{
		Token:     "session-token",
		UserID:    uuid.New(),
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (f *FakeService) Register(ctx context.Context, email, password string) (*authservice.Session, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, email, password)
	}
	return fakeSession(email), nil
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.Session, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return fakeSession(email), nil
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return &authdomain.Claims{UserID: uuid.New(), Email: "test@example.com"}, nil
}

var _ authservice.Service = (*FakeService)(nil)
