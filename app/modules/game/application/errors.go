package gameservice

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGameTypeNotFound = errors.New("game type not found")
	ErrNotParticipant   = errors.New("player is not in this game")
	ErrGameCompleted    = errors.New("game is already completed")
	ErrNotEnoughPlayers = errors.New("a game needs at least two players")
	ErrDuplicatePlayer  = errors.New("a player can only join a game once")
	ErrEmptyName        = errors.New("empty name")
	ErrDuplicateName    = errors.New("name already exists")
	ErrSamePlayer       = errors.New("pick two different players to compare")
)

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGameNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrGameTypeNotFound)
}

// IsValidation reports whether err was caused by bad input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNotParticipant) ||
		errors.Is(err, ErrGameCompleted) ||
		errors.Is(err, ErrNotEnoughPlayers) ||
		errors.Is(err, ErrDuplicatePlayer) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrSamePlayer)
}
