package gamedb

import "errors"

var (
	// ErrNotFound indicates the row does not exist or belongs to another user.
	ErrNotFound = errors.New("game record not found")

	// ErrDuplicateName indicates a unique name constraint was violated.
	ErrDuplicateName = errors.New("name already exists")
)
