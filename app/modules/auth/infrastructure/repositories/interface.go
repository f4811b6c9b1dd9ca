package authdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence.
type Repository interface {
	GetUserByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)
	GetUserByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error)
	CreateUser(ctx context.Context, db bun.IDB, user *User) error
}
