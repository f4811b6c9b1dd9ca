package authservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	authdomain "github.com/runmoore/scrabble-score/app/modules/auth/domain"
	authjwt "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/jwt"
	authdb "github.com/runmoore/scrabble-score/app/modules/auth/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{UserID: uuid.New(), Email: "test@example.com"}, nil
}

// ------------------------
// Fake User Repository
// ------------------------

type FakeUserRepo struct {
	trace []string

	GetUserByEmailFunc func(ctx context.Context, db bun.IDB, email string) (*authdb.User, error)
	GetUserByIDFunc    func(ctx context.Context, db bun.IDB, id uuid.UUID) (*authdb.User, error)
	CreateUserFunc     func(ctx context.Context, db bun.IDB, user *authdb.User) error
}

func (f *FakeUserRepo) Trace() []string {
	return f.trace
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) GetUserByEmail(ctx context.Context, db bun.IDB, email string) (*authdb.User, error) {
	f.record("GetUserByEmail")
	if f.GetUserByEmailFunc != nil {
		return f.GetUserByEmailFunc(ctx, db, email)
	}
	return nil, authdb.ErrNotFound
}

func (f *FakeUserRepo) GetUserByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*authdb.User, error) {
	f.record("GetUserByID")
	if f.GetUserByIDFunc != nil {
		return f.GetUserByIDFunc(ctx, db, id)
	}
	return nil, authdb.ErrNotFound
}

func (f *FakeUserRepo) CreateUser(ctx context.Context, db bun.IDB, user *authdb.User) error {
	f.record("CreateUser")
	if f.CreateUserFunc != nil {
		return f.CreateUserFunc(ctx, db, user)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return nil
}

// Interface assertions
var (
	_ authjwt.Provider  = (*FakeJWTProvider)(nil)
	_ authdb.Repository = (*FakeUserRepo)(nil)
)
